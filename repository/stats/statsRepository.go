package statsrepo

import (
	"context"
	"net/http"

	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/repository/rest"
)

type Repo interface {
	Products(ctx context.Context, token string) (*model.ProductStats, error)
	Rentals(ctx context.Context, token string) (*model.RentalStats, error)
}

type repo struct{ c *rest.Client }

func New(c *rest.Client) Repo { return &repo{c} }

func (r *repo) Products(ctx context.Context, token string) (*model.ProductStats, error) {
	var out model.ProductStats
	if err := r.c.Do(ctx, token, http.MethodGet, "/stats/products", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Rentals(ctx context.Context, token string) (*model.RentalStats, error) {
	var out model.RentalStats
	if err := r.c.Do(ctx, token, http.MethodGet, "/stats/rentals", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
