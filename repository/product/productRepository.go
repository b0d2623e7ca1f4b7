package productrepo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mademanik/minjeminapp/model"
	"github.com/mademanik/minjeminapp/repository/rest"
)

type Repo interface {
	// ListMine returns the caller's own catalog, optionally narrowed.
	ListMine(ctx context.Context, token string, f model.ProductFilter) ([]model.Product, error)
	// ListAll returns every product, unfiltered.
	ListAll(ctx context.Context, token string) ([]model.Product, error)
	GetByID(ctx context.Context, token string, id int64) (*model.Product, error)
	Create(ctx context.Context, token string, p model.Product) (*model.Product, error)
	Update(ctx context.Context, token string, id int64, p model.Product) (*model.Product, error)
	Delete(ctx context.Context, token string, id int64) error
}

type repo struct{ c *rest.Client }

func New(c *rest.Client) Repo { return &repo{c} }

func (r *repo) ListMine(ctx context.Context, token string, f model.ProductFilter) ([]model.Product, error) {
	// Empty filter fields are omitted so the upstream applies its
	// "no constraint" semantics instead of matching empty strings.
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.MinPrice != "" {
		q.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		q.Set("maxPrice", f.MaxPrice)
	}
	path := "/items/my"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []model.Product
	if err := r.c.Do(ctx, token, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListAll(ctx context.Context, token string) ([]model.Product, error) {
	var out []model.Product
	if err := r.c.Do(ctx, token, http.MethodGet, "/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) GetByID(ctx context.Context, token string, id int64) (*model.Product, error) {
	var out model.Product
	if err := r.c.Do(ctx, token, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Create(ctx context.Context, token string, p model.Product) (*model.Product, error) {
	p.ID = 0 // server-assigned
	var out model.Product
	if err := r.c.Do(ctx, token, http.MethodPost, "/items", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Update(ctx context.Context, token string, id int64, p model.Product) (*model.Product, error) {
	var out model.Product
	if err := r.c.Do(ctx, token, http.MethodPut, fmt.Sprintf("/items/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Delete(ctx context.Context, token string, id int64) error {
	return r.c.Do(ctx, token, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}
