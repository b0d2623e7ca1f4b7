// Package productsvc owns the product screen: the "my items" list and
// the add/edit modal.
package productsvc

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/mademanik/minjeminapp/model"
	productrepo "github.com/mademanik/minjeminapp/repository/product"
	"github.com/mademanik/minjeminapp/service/view"
)

// Service bundles the product list controller and its form. The form
// refreshes the list after any successful mutation.
type Service struct {
	List *view.List[model.Product, model.ProductFilter]
	Form *Form
}

func New(repo productrepo.Repo, v *validator.Validate) *Service {
	list := view.NewList(
		func(ctx context.Context, token string, f model.ProductFilter) ([]model.Product, error) {
			return repo.ListMine(ctx, token, f)
		},
		repo.Delete,
		func(p model.Product) int64 { return p.ID },
	)
	return &Service{
		List: list,
		Form: newForm(repo, v, list.Load),
	}
}
