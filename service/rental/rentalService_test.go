// service/rental/rental_service_test.go
package rentalsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/service/view"
)

type mockRepo struct {
	ListRequestsFn func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error)
	ListMineFn     func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error)
	GetByIDFn      func(ctx context.Context, token string, id int64) (*model.Rental, error)
	CreateFn       func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error)
	UpdateFn       func(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error)
	DeleteFn       func(ctx context.Context, token string, id int64) error
	TransitionFn   func(verb string, id int64) (*model.Rental, error)
}

func (m *mockRepo) ListRequests(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
	return m.ListRequestsFn(ctx, token, f)
}
func (m *mockRepo) ListMine(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
	return m.ListMineFn(ctx, token, f)
}
func (m *mockRepo) GetByID(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return m.GetByIDFn(ctx, token, id)
}
func (m *mockRepo) Create(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
	return m.CreateFn(ctx, token, rental)
}
func (m *mockRepo) Update(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error) {
	return m.UpdateFn(ctx, token, id, patch)
}
func (m *mockRepo) Delete(ctx context.Context, token string, id int64) error {
	return m.DeleteFn(ctx, token, id)
}
func (m *mockRepo) Approve(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return m.TransitionFn("approve", id)
}
func (m *mockRepo) Start(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return m.TransitionFn("start", id)
}
func (m *mockRepo) Complete(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return m.TransitionFn("complete", id)
}
func (m *mockRepo) Cancel(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return m.TransitionFn("cancel", id)
}

func TestFormSubmit_CreateRejectsBackwardsDates(t *testing.T) {
	created := 0
	repo := &mockRepo{
		CreateFn: func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
			created++
			return &rental, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error { return nil })

	f.OpenNew()
	f.SetCreateFields(CreateFields{ItemID: 3, StartDate: "2026-05-10", EndDate: "2026-05-01"})

	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Contains(t, fieldErrs, "endDate")
	require.Equal(t, 0, created)
}

func TestFormSubmit_CreateRejectsMalformedDate(t *testing.T) {
	repo := &mockRepo{
		CreateFn: func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
			t.Fatal("must not reach the network")
			return nil, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error { return nil })

	f.OpenNew()
	f.SetCreateFields(CreateFields{ItemID: 3, StartDate: "10/05/2026", EndDate: "2026-05-20"})

	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Contains(t, fieldErrs, "startDate")
}

func TestFormSubmit_CreateSendsRequest(t *testing.T) {
	var sent model.Rental
	repo := &mockRepo{
		CreateFn: func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
			sent = rental
			rental.ID = 11
			return &rental, nil
		},
	}
	refreshed := 0
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error {
		refreshed++
		return nil
	})

	f.OpenNew()
	f.SetCreateFields(CreateFields{ItemID: 3, StartDate: "2026-05-01", EndDate: "2026-05-10"})

	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Nil(t, fieldErrs)
	require.Equal(t, int64(3), sent.ItemID)
	require.Equal(t, 1, refreshed)
	require.False(t, f.Snapshot().Open)
}

func TestFormSubmit_EditTransmitsOnlyStatusAndPaid(t *testing.T) {
	var sentID int64
	var sent model.RentalPatch
	repo := &mockRepo{
		GetByIDFn: func(ctx context.Context, token string, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, ItemID: 3, ItemName: "Tent",
				StartDate: "2026-05-01", EndDate: "2026-05-10",
				Status: model.RentalPending, Paid: false,
			}, nil
		},
		UpdateFn: func(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error) {
			sentID = id
			sent = patch
			return &model.Rental{ID: id, Status: patch.Status, Paid: patch.Paid}, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error { return nil })

	require.NoError(t, f.OpenEdit(context.Background(), "tok", 9))
	snap := f.Snapshot()
	require.Equal(t, model.RentalPending, snap.Edit.Status)
	require.False(t, snap.Edit.Paid)

	f.SetEditFields(EditFields{Status: model.RentalApproved, Paid: true})
	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Nil(t, fieldErrs)
	require.Equal(t, int64(9), sentID)
	require.Equal(t, model.RentalPatch{Status: model.RentalApproved, Paid: true}, sent)
}

func TestFormSubmit_EditRejectsUnknownStatus(t *testing.T) {
	repo := &mockRepo{
		GetByIDFn: func(ctx context.Context, token string, id int64) (*model.Rental, error) {
			return &model.Rental{ID: id, Status: model.RentalPending}, nil
		},
		UpdateFn: func(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error) {
			t.Fatal("must not reach the network")
			return nil, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error { return nil })

	require.NoError(t, f.OpenEdit(context.Background(), "tok", 9))
	f.SetEditFields(EditFields{Status: "SHIPPED", Paid: true})

	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Contains(t, fieldErrs, "status")
}

func TestFormSubmit_EditAfterFailedHydrationStillPatches(t *testing.T) {
	created := 0
	var sentID int64
	var sent model.RentalPatch
	repo := &mockRepo{
		GetByIDFn: func(ctx context.Context, token string, id int64) (*model.Rental, error) {
			return nil, errors.New("upstream down")
		},
		CreateFn: func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
			created++
			return &rental, nil
		},
		UpdateFn: func(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error) {
			sentID = id
			sent = patch
			return &model.Rental{ID: id, Status: patch.Status, Paid: patch.Paid}, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error { return nil })

	require.Error(t, f.OpenEdit(context.Background(), "tok", 9))
	f.SetEditFields(EditFields{Status: model.RentalApproved, Paid: true})

	fieldErrs, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.Nil(t, fieldErrs, "the edit schema applies, not the create schema")
	require.Equal(t, 0, created, "an edit-mode modal must never create")
	require.Equal(t, int64(9), sentID)
	require.Equal(t, model.RentalPatch{Status: model.RentalApproved, Paid: true}, sent)
}

func TestFormSubmit_StaleSubmitLeavesNewModalAlone(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	refreshed := 0
	repo := &mockRepo{
		CreateFn: func(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
			close(started)
			<-release
			rental.ID = 31
			return &rental, nil
		},
	}
	f := newForm(repo, view.NewValidator(), func(context.Context, string) error {
		refreshed++
		return nil
	})

	f.OpenNew()
	f.SetCreateFields(CreateFields{ItemID: 3, StartDate: "2026-05-01", EndDate: "2026-05-10"})

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), "tok")
		done <- err
	}()

	<-started
	f.Cancel()
	f.OpenNew()
	next := CreateFields{ItemID: 5, StartDate: "2026-06-01", EndDate: "2026-06-02"}
	f.SetCreateFields(next)

	close(release)
	require.ErrorIs(t, <-done, view.ErrSuperseded)

	snap := f.Snapshot()
	require.True(t, snap.Open, "a stale submit must not close the new modal")
	require.Equal(t, next, snap.Create)
	require.Equal(t, 0, refreshed)
}

func TestTransition_RefreshesRequests(t *testing.T) {
	loads := 0
	repo := &mockRepo{
		ListRequestsFn: func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
			loads++
			return nil, nil
		},
		TransitionFn: func(verb string, id int64) (*model.Rental, error) {
			require.Equal(t, "approve", verb)
			require.Equal(t, int64(4), id)
			return &model.Rental{ID: id, Status: model.RentalApproved}, nil
		},
	}
	s := New(repo, view.NewValidator())

	require.NoError(t, s.Transition(context.Background(), "tok", 4, "approve"))
	require.Equal(t, 1, loads)
}

func TestTransition_UnknownVerb(t *testing.T) {
	s := New(&mockRepo{}, view.NewValidator())
	err := s.Transition(context.Background(), "tok", 4, "teleport")
	require.ErrorIs(t, err, ErrUnknownTransition)
}

func TestTransition_FailureDoesNotRefresh(t *testing.T) {
	repo := &mockRepo{
		ListRequestsFn: func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
			t.Fatal("must not reload after a failed transition")
			return nil, nil
		},
		TransitionFn: func(verb string, id int64) (*model.Rental, error) {
			return nil, errors.New("illegal transition")
		},
	}
	s := New(repo, view.NewValidator())
	require.Error(t, s.Transition(context.Background(), "tok", 4, "start"))
}
