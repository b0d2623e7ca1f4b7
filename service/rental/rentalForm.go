package rentalsvc

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mademanik/minjeminapp/model"
	rentalrepo "github.com/mademanik/minjeminapp/repository/rental"
	"github.com/mademanik/minjeminapp/service/view"
)

var ErrUnknownTransition = errors.New("unknown rental transition")

// CreateFields is the submit schema when requesting a new rental.
type CreateFields struct {
	ItemID    int64  `json:"itemId" validate:"required,gt=0"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// EditFields is the mutable subset of an existing rental. Everything
// else on the record is read-only display data; updates transmit only
// these two fields.
type EditFields struct {
	Status model.RentalStatus `json:"status" validate:"required,oneof=PENDING APPROVED ONGOING COMPLETED CANCELLED"`
	Paid   bool               `json:"paid"`
}

// Form is the rental modal controller. In create mode it collects
// CreateFields; in edit mode it hydrates the full record for display
// and exposes only EditFields for mutation.
type Form struct {
	mu      sync.Mutex
	repo    rentalrepo.Repo
	v       *validator.Validate
	refresh func(ctx context.Context, token string) error

	open      bool
	editing   *model.Rental
	create    CreateFields
	edit      EditFields
	hydration view.Phase
	gen       uint64
	lastErr   error
}

func newForm(repo rentalrepo.Repo, v *validator.Validate, refresh func(context.Context, string) error) *Form {
	return &Form{repo: repo, v: v, refresh: refresh, hydration: view.PhaseIdle}
}

type FormSnapshot struct {
	Open      bool          `json:"open"`
	Editing   *model.Rental `json:"editing,omitempty"`
	Create    CreateFields  `json:"create"`
	Edit      EditFields    `json:"edit"`
	Hydration view.Phase    `json:"hydration"`
	Error     string        `json:"error,omitempty"`
}

func (f *Form) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := FormSnapshot{Open: f.open, Editing: f.editing, Create: f.create, Edit: f.edit, Hydration: f.hydration}
	if f.lastErr != nil {
		s.Error = f.lastErr.Error()
	}
	return s
}

func (f *Form) OpenNew() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.open = true
	f.editing = nil
	f.create = CreateFields{}
	f.edit = EditFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
}

// OpenEdit records the target identity immediately, so a submit
// routes to an update whatever the hydration outcome. Field state is
// cleared before the fetch resolves so a previously opened rental
// never shows through, then the mutable fields are seeded from the
// fetched record only.
func (f *Form) OpenEdit(ctx context.Context, token string, id int64) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.open = true
	f.editing = &model.Rental{ID: id}
	f.create = CreateFields{}
	f.edit = EditFields{}
	f.hydration = view.PhaseLoading
	f.lastErr = nil
	f.mu.Unlock()

	r, err := f.repo.GetByID(ctx, token, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return view.ErrSuperseded
	}
	if err != nil {
		// Still edit mode, still targeting id.
		f.hydration = view.PhaseFailed
		f.lastErr = err
		return err
	}
	f.editing = r
	f.edit = EditFields{Status: r.Status, Paid: r.Paid}
	f.hydration = view.PhaseLoaded
	return nil
}

func (f *Form) SetCreateFields(fields CreateFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.create = fields
}

func (f *Form) SetEditFields(fields EditFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edit = fields
}

// Submit validates the schema for the current mode, then creates or
// patches. Date ordering is checked before any network call. A submit
// that resolves after the modal was cancelled or reopened must not
// touch the newer modal's state.
func (f *Form) Submit(ctx context.Context, token string) (view.FieldErrors, error) {
	f.mu.Lock()
	gen := f.gen
	create := f.create
	edit := f.edit
	editing := f.editing
	f.mu.Unlock()

	var err error
	if editing == nil {
		if fieldErrs := f.checkCreate(create); fieldErrs != nil {
			return fieldErrs, nil
		}
		_, err = f.repo.Create(ctx, token, model.Rental{
			ItemID:    create.ItemID,
			StartDate: create.StartDate,
			EndDate:   create.EndDate,
		})
	} else {
		if fieldErrs := view.Check(f.v, edit); fieldErrs != nil {
			return fieldErrs, nil
		}
		_, err = f.repo.Update(ctx, token, editing.ID, model.RentalPatch{
			Status: edit.Status,
			Paid:   edit.Paid,
		})
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
	f.create = CreateFields{}
	f.edit = EditFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
	f.mu.Unlock()

	_ = f.refresh(ctx, token)
	return nil, nil
}

func (f *Form) checkCreate(fields CreateFields) view.FieldErrors {
	fieldErrs := view.Check(f.v, fields)
	if fieldErrs != nil {
		return fieldErrs
	}
	start, err := view.ParseDate(fields.StartDate)
	if err != nil {
		return view.FieldErrors{"startDate": "must be a yyyy-mm-dd date"}
	}
	end, err := view.ParseDate(fields.EndDate)
	if err != nil {
		return view.FieldErrors{"endDate": "must be a yyyy-mm-dd date"}
	}
	if end.Before(start) {
		return view.FieldErrors{"endDate": "must not be before startDate"}
	}
	return nil
}

func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.open = false
	f.editing = nil
	f.create = CreateFields{}
	f.edit = EditFields{}
	f.hydration = view.PhaseIdle
	f.lastErr = nil
}
