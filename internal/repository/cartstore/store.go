package cartstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/cart"
)

// Store keeps cart accumulators in memory, keyed by a random UUID.
// Each Update runs under the store lock, so a mutation and the totals it
// returns are observed atomically.
type Store struct {
	mu    sync.Mutex
	carts map[string]*cart.Accumulator
}

// New creates an empty store.
func New() *Store {
	return &Store{carts: make(map[string]*cart.Accumulator)}
}

// Create allocates an empty cart and returns its id.
func (s *Store) Create(_ context.Context) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[id] = cart.New()
	return id, nil
}

// Get returns a snapshot of the cart.
func (s *Store) Get(_ context.Context, id string) (cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.carts[id]
	if !ok {
		return cart.Snapshot{}, fmt.Errorf("cart %q: %w", id, domain.ErrCartNotFound)
	}
	return acc.Snapshot(), nil
}

// Update applies fn to a working copy of the cart and commits it only when fn succeeds.
func (s *Store) Update(_ context.Context, id string, fn func(*cart.Accumulator) error) (cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.carts[id]
	if !ok {
		return cart.Snapshot{}, fmt.Errorf("cart %q: %w", id, domain.ErrCartNotFound)
	}
	work := acc.Clone()
	if err := fn(work); err != nil {
		return cart.Snapshot{}, err
	}
	s.carts[id] = work
	return work.Snapshot(), nil
}

// Delete drops a cart. Deleting an unknown cart is a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	return nil
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Ping reports whether the store lock can be acquired before ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mu.Lock()
		s.mu.Unlock() //nolint:staticcheck // empty critical section checks the lock is free
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("cart store: %w", ctx.Err())
	}
}
