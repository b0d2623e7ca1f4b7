// Package rentalsvc owns the two rental screens: the owner's request
// inbox (with its update modal and lifecycle actions) and the
// caller's own rentals.
package rentalsvc

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/mademanik/minjeminapp/model"
	rentalrepo "github.com/mademanik/minjeminapp/repository/rental"
	"github.com/mademanik/minjeminapp/service/view"
)

type Service struct {
	// Requests lists rentals asked against the caller's items.
	Requests *view.List[model.Rental, model.RentalFilter]
	// Mine lists rentals where the caller is the borrower.
	Mine *view.List[model.Rental, model.RentalFilter]
	Form *Form

	repo rentalrepo.Repo
}

func New(repo rentalrepo.Repo, v *validator.Validate) *Service {
	rentalID := func(r model.Rental) int64 { return r.ID }

	requests := view.NewList(
		func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
			return repo.ListRequests(ctx, token, f)
		},
		repo.Delete,
		rentalID,
	)
	mine := view.NewList(
		func(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
			return repo.ListMine(ctx, token, f)
		},
		repo.Delete,
		rentalID,
	)

	return &Service{
		Requests: requests,
		Mine:     mine,
		Form:     newForm(repo, v, requests.Load),
		repo:     repo,
	}
}

// Transition runs one lifecycle action (approve, start, complete,
// cancel) and refreshes the request inbox on success.
func (s *Service) Transition(ctx context.Context, token string, id int64, verb string) error {
	var err error
	switch verb {
	case "approve":
		_, err = s.repo.Approve(ctx, token, id)
	case "start":
		_, err = s.repo.Start(ctx, token, id)
	case "complete":
		_, err = s.repo.Complete(ctx, token, id)
	case "cancel":
		_, err = s.repo.Cancel(ctx, token, id)
	default:
		return ErrUnknownTransition
	}
	if err != nil {
		return err
	}
	_ = s.Requests.Load(ctx, token)
	return nil
}
