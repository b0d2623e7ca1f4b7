// Package view holds the stateful view-controller machinery shared by
// every resource screen: list state machines with stale-response
// protection, and the modal phase type used by the edit forms.
package view

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Phase is the explicit state of a list controller. The combinations a
// pair of booleans could mis-encode (loading with an error set, etc.)
// are unrepresentable.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseLoaded  Phase = "LOADED"
	PhaseFailed  Phase = "FAILED"
)

// ErrSuperseded marks a fetch whose result was discarded because a
// newer Load was issued while it was in flight. It is not a failure of
// the list itself and is never surfaced to the user.
var ErrSuperseded = errors.New("fetch superseded by a newer load")

// FetchFunc loads rows for a filter under a bearer token.
type FetchFunc[E, F any] func(ctx context.Context, token string, filter F) ([]E, error)

// DeleteFunc removes one row upstream.
type DeleteFunc func(ctx context.Context, token string, id int64) error

// List owns one screen's result set. Every fetch carries a generation
// number; only the fetch belonging to the newest generation may commit
// into Items, so a slow stale response can never overwrite the result
// of a later Search, Reset, or token-rotation reload.
type List[E, F any] struct {
	mu     sync.Mutex
	fetch  FetchFunc[E, F]
	remove DeleteFunc
	id     func(E) int64

	phase   Phase
	items   []E
	filter  F
	gen     uint64
	lastErr error
}

func NewList[E, F any](fetch FetchFunc[E, F], remove DeleteFunc, id func(E) int64) *List[E, F] {
	return &List[E, F]{fetch: fetch, remove: remove, id: id, phase: PhaseIdle}
}

// Snapshot is an immutable copy of the list state for rendering.
type Snapshot[E, F any] struct {
	Phase  Phase  `json:"phase"`
	Items  []E    `json:"items"`
	Filter F      `json:"filter"`
	Error  string `json:"error,omitempty"`
}

func (l *List[E, F]) Snapshot() Snapshot[E, F] {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]E, len(l.items))
	copy(items, l.items)
	s := Snapshot[E, F]{Phase: l.phase, Items: items, Filter: l.filter}
	if l.lastErr != nil {
		s.Error = l.lastErr.Error()
	}
	return s
}

// Load fetches with the currently applied filter.
func (l *List[E, F]) Load(ctx context.Context, token string) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()
	return l.load(ctx, token, filter)
}

// Search applies a new filter and reloads.
func (l *List[E, F]) Search(ctx context.Context, token string, filter F) error {
	return l.load(ctx, token, filter)
}

// Reset clears the filter back to "no constraint" and reloads.
func (l *List[E, F]) Reset(ctx context.Context, token string) error {
	var empty F
	return l.load(ctx, token, empty)
}

// Delete removes a row upstream, then reloads the whole list so any
// server-side side effects show up. On removal failure the list is
// untouched and the error returned. A failed reload is not a failed
// delete: it lands in the list state as PhaseFailed with the previous
// items kept, never in the return value.
func (l *List[E, F]) Delete(ctx context.Context, token string, id int64) error {
	if err := l.remove(ctx, token, id); err != nil {
		return err
	}
	_ = l.Load(ctx, token)
	return nil
}

func (l *List[E, F]) load(ctx context.Context, token string, filter F) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.filter = filter
	l.phase = PhaseLoading
	l.mu.Unlock()

	items, err := l.fetch(ctx, token, filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		// A newer load was issued while this one was in flight.
		return ErrSuperseded
	}
	if err != nil {
		// Keep the previous items; never clear on error.
		l.phase = PhaseFailed
		l.lastErr = err
		return err
	}

	sort.Slice(items, func(i, j int) bool { return l.id(items[i]) < l.id(items[j]) })
	l.items = items
	l.phase = PhaseLoaded
	l.lastErr = nil
	return nil
}
