package validation

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts a shared *validator.Validate to echo's interface,
// so handlers and the form controllers validate against the same
// schema instance.
type Validator struct {
	v *validator.Validate
}

func New(v *validator.Validate) *Validator {
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
