package view

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field (its json name) to a message shown
// next to it. A non-empty map means the submit never reached the
// network.
type FieldErrors map[string]string

// NewValidator builds the validator shared by the form controllers
// and the echo binding layer, keyed by json field names so messages
// line up with what the client sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check runs struct validation and flattens the result into
// field-level messages.
func Check(v *validator.Validate, s any) FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	out := FieldErrors{}
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}

const dateLayout = "2006-01-02"

// ParseDate reads an upstream-style yyyy-mm-dd value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
