package rentalrepo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/repository/rest"
)

type Repo interface {
	// ListRequests returns rentals requested against the caller's
	// items (the owner's inbox).
	ListRequests(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error)
	// ListMine returns rentals where the caller is the borrower.
	ListMine(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error)
	GetByID(ctx context.Context, token string, id int64) (*model.Rental, error)
	Create(ctx context.Context, token string, rental model.Rental) (*model.Rental, error)
	Update(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error)
	Delete(ctx context.Context, token string, id int64) error

	// Lifecycle transitions; the upstream enforces legal ordering.
	Approve(ctx context.Context, token string, id int64) (*model.Rental, error)
	Start(ctx context.Context, token string, id int64) (*model.Rental, error)
	Complete(ctx context.Context, token string, id int64) (*model.Rental, error)
	Cancel(ctx context.Context, token string, id int64) (*model.Rental, error)
}

type repo struct{ c *rest.Client }

func New(c *rest.Client) Repo { return &repo{c} }

func rentalQuery(f model.RentalFilter) string {
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (r *repo) ListRequests(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
	var out []model.Rental
	if err := r.c.Do(ctx, token, http.MethodGet, "/rentals/request"+rentalQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListMine(ctx context.Context, token string, f model.RentalFilter) ([]model.Rental, error) {
	var out []model.Rental
	if err := r.c.Do(ctx, token, http.MethodGet, "/rentals/my"+rentalQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) GetByID(ctx context.Context, token string, id int64) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Do(ctx, token, http.MethodGet, fmt.Sprintf("/rentals/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Create(ctx context.Context, token string, rental model.Rental) (*model.Rental, error) {
	rental.ID = 0 // server-assigned
	var out model.Rental
	if err := r.c.Do(ctx, token, http.MethodPost, "/rentals", rental, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Update(ctx context.Context, token string, id int64, patch model.RentalPatch) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Do(ctx, token, http.MethodPut, fmt.Sprintf("/rentals/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Delete(ctx context.Context, token string, id int64) error {
	return r.c.Do(ctx, token, http.MethodDelete, fmt.Sprintf("/rentals/%d", id), nil, nil)
}

func (r *repo) transition(ctx context.Context, token string, id int64, verb string) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Do(ctx, token, http.MethodPost, fmt.Sprintf("/rentals/%d/%s", id, verb), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Approve(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return r.transition(ctx, token, id, "approve")
}

func (r *repo) Start(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return r.transition(ctx, token, id, "start")
}

func (r *repo) Complete(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return r.transition(ctx, token, id, "complete")
}

func (r *repo) Cancel(ctx context.Context, token string, id int64) (*model.Rental, error) {
	return r.transition(ctx, token, id, "cancel")
}
