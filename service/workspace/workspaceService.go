// Package workspace keeps one set of view controllers per session, so
// list and form state survives across requests the way it would in a
// long-lived client.
package workspace

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mademanik/minjeminapp/model"
	productrepo "github.com/mademanik/minjeminapp/repository/product"
	rentalrepo "github.com/mademanik/minjeminapp/repository/rental"
	statsrepo "github.com/mademanik/minjeminapp/repository/stats"
	dashboardsvc "github.com/mademanik/minjeminapp/service/dashboard"
	productsvc "github.com/mademanik/minjeminapp/service/product"
	rentalsvc "github.com/mademanik/minjeminapp/service/rental"
)

// Workspace is one session's controller set.
type Workspace struct {
	Products  *productsvc.Service
	Rentals   *rentalsvc.Service
	Dashboard *dashboardsvc.Service

	mu        sync.Mutex
	lastToken string
}

// Sync reacts to token rotation: if the session's bearer token differs
// from the one the lists last fetched under, every list reloads. The
// first call after creation also loads (fetch-on-mount). The token
// itself is never stored beyond this change-detection snapshot.
func (w *Workspace) Sync(ctx context.Context, sess *model.Session, log *slog.Logger) {
	w.mu.Lock()
	changed := w.lastToken != sess.Token
	w.lastToken = sess.Token
	w.mu.Unlock()
	if !changed {
		return
	}

	// Load failures keep each list's previous items; nothing here is
	// fatal.
	if err := w.Products.List.Load(ctx, sess.Token); err != nil {
		log.Warn("workspace: product list reload", "err", err)
	}
	if err := w.Rentals.Requests.Load(ctx, sess.Token); err != nil {
		log.Warn("workspace: rental requests reload", "err", err)
	}
	if err := w.Rentals.Mine.Load(ctx, sess.Token); err != nil {
		log.Warn("workspace: my rentals reload", "err", err)
	}
}

// Hub hands out workspaces keyed by session subject.
type Hub struct {
	mu  sync.Mutex
	ws  map[string]*Workspace
	mk  func() *Workspace
	log *slog.Logger
}

func NewHub(products productrepo.Repo, rentals rentalrepo.Repo, stats statsrepo.Repo, v *validator.Validate, log *slog.Logger) *Hub {
	return &Hub{
		ws: make(map[string]*Workspace),
		mk: func() *Workspace {
			return &Workspace{
				Products:  productsvc.New(products, v),
				Rentals:   rentalsvc.New(rentals, v),
				Dashboard: dashboardsvc.New(stats),
			}
		},
		log: log,
	}
}

// For returns the session's workspace, creating it on first sight,
// and runs token-change synchronization.
func (h *Hub) For(ctx context.Context, sess *model.Session) *Workspace {
	h.mu.Lock()
	w, ok := h.ws[sess.Subject]
	if !ok {
		w = h.mk()
		h.ws[sess.Subject] = w
	}
	h.mu.Unlock()

	w.Sync(ctx, sess, h.log)
	return w
}
