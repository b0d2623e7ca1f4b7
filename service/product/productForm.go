package productsvc

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mademanik/minjeminapp/model"
	productrepo "github.com/mademanik/minjeminapp/repository/product"
	"github.com/mademanik/minjeminapp/service/view"
)

// FormFields is the editable field bag of the product modal. The
// validate tags are the declared submit schema.
type FormFields struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	PricePerDay float64 `json:"pricePerDay" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Available   bool    `json:"available"`
}

// Form is the add/edit product modal controller. Edit mode hydrates
// its fields from a fresh fetch-by-id, not from the list cache.
type Form struct {
	mu      sync.Mutex
	repo    productrepo.Repo
	v       *validator.Validate
	refresh func(ctx context.Context, token string) error

	open      bool
	editing   *model.Product
	fields    FormFields
	hydration view.Phase
	gen       uint64
	lastErr   error
}

func newForm(repo productrepo.Repo, v *validator.Validate, refresh func(context.Context, string) error) *Form {
	return &Form{repo: repo, v: v, refresh: refresh, hydration: view.PhaseIdle}
}

// FormSnapshot is the modal state for rendering.
type FormSnapshot struct {
	Open      bool           `json:"open"`
	Editing   *model.Product `json:"editing,omitempty"`
	Fields    FormFields     `json:"fields"`
	Hydration view.Phase     `json:"hydration"`
	Error     string         `json:"error,omitempty"`
}

func (f *Form) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := FormSnapshot{Open: f.open, Editing: f.editing, Fields: f.fields, Hydration: f.hydration}
	if f.lastErr != nil {
		s.Error = f.lastErr.Error()
	}
	return s
}

// OpenNew opens the modal in create mode with blank fields.
func (f *Form) OpenNew() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.open = true
	f.editing = nil
	f.fields = FormFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
}

// OpenEdit opens the modal in edit mode. The target identity is
// recorded immediately so a submit routes to an update whatever the
// hydration outcome; fields are cleared first so a previously opened
// entity never shows through, then populated from the authoritative
// fetched record. A hydration superseded by a newer open is discarded.
func (f *Form) OpenEdit(ctx context.Context, token string, id int64) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.open = true
	f.editing = &model.Product{ID: id}
	f.fields = FormFields{}
	f.hydration = view.PhaseLoading
	f.lastErr = nil
	f.mu.Unlock()

	p, err := f.repo.GetByID(ctx, token, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return view.ErrSuperseded
	}
	if err != nil {
		// Still edit mode, still targeting id; only the fields are
		// missing.
		f.hydration = view.PhaseFailed
		f.lastErr = err
		return err
	}
	f.editing = p
	f.fields = FormFields{
		Name:        p.Name,
		Description: p.Description,
		PricePerDay: p.PricePerDay,
		Stock:       p.Stock,
		Available:   p.Available,
	}
	f.hydration = view.PhaseLoaded
	return nil
}

// SetFields replaces the field bag with the client's current edits.
func (f *Form) SetFields(fields FormFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Submit validates, then creates or updates. Validation failures
// return field messages and make no network call. On network failure
// the modal stays open with the entered values intact. A submit that
// resolves after the modal was cancelled or reopened must not touch
// the newer modal's state.
func (f *Form) Submit(ctx context.Context, token string) (view.FieldErrors, error) {
	f.mu.Lock()
	gen := f.gen
	fields := f.fields
	editing := f.editing
	f.mu.Unlock()

	if fieldErrs := view.Check(f.v, fields); fieldErrs != nil {
		return fieldErrs, nil
	}

	payload := model.Product{
		Name:        fields.Name,
		Description: fields.Description,
		PricePerDay: fields.PricePerDay,
		Stock:       fields.Stock,
		Available:   fields.Available,
	}

	var err error
	if editing == nil {
		_, err = f.repo.Create(ctx, token, payload)
	} else {
		_, err = f.repo.Update(ctx, token, editing.ID, payload)
	}

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return nil, view.ErrSuperseded
	}
	if err != nil {
		f.lastErr = err
		f.mu.Unlock()
		return nil, err
	}
	f.open = false
	f.editing = nil
	f.fields = FormFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
	f.mu.Unlock()

	// List refresh failures are the list's own concern; the submit
	// already succeeded upstream.
	_ = f.refresh(ctx, token)
	return nil, nil
}

// Cancel closes the modal and discards unsaved edits.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.open = false
	f.editing = nil
	f.fields = FormFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
}
