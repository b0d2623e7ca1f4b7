// Package dashboardsvc aggregates the two /stats endpoints for the
// admin home view.
package dashboardsvc

import (
	"context"
	"sync"

	"github.com/mademanik/minjeminapp/model"
	statsrepo "github.com/mademanik/minjeminapp/repository/stats"
)

type Service struct {
	repo statsrepo.Repo

	mu       sync.Mutex
	snapshot Snapshot
}

func New(repo statsrepo.Repo) *Service {
	return &Service{repo: repo}
}

// Snapshot carries each section's value or error independently: one
// failing aggregate never blanks the other.
type Snapshot struct {
	Products    *model.ProductStats `json:"products,omitempty"`
	ProductsErr string              `json:"productsError,omitempty"`
	Rentals     *model.RentalStats  `json:"rentals,omitempty"`
	RentalsErr  string              `json:"rentalsError,omitempty"`
}

// Load issues both aggregate fetches concurrently. Each goroutine
// writes only its own slot; results are committed together.
func (s *Service) Load(ctx context.Context, token string) Snapshot {
	var (
		wg       sync.WaitGroup
		products *model.ProductStats
		rentals  *model.RentalStats
		perr     error
		rerr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, perr = s.repo.Products(ctx, token)
	}()
	go func() {
		defer wg.Done()
		rentals, rerr = s.repo.Rentals(ctx, token)
	}()
	wg.Wait()

	snap := Snapshot{Products: products, Rentals: rentals}
	if perr != nil {
		snap.ProductsErr = perr.Error()
	}
	if rerr != nil {
		snap.RentalsErr = rerr.Error()
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	return snap
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
