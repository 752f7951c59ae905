package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vitrineshop.org/vitrine-web/internal/catalog"
)

// Service applies the mutation protocol through the Repository: every
// operation loads the current document, applies the transition, and persists
// before returning. Within one process the load-modify-save cycle is
// serialized, so sequentially awaited mutations are strictly ordered.
// Across processes the document stays last-write-wins.
type Service struct {
	repo       Repository
	orders     OrderPlacer
	writeDelay time.Duration
	observer   func(State)

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithWriteDelay emulates persisted-write latency before each mutation.
func WithWriteDelay(d time.Duration) Option {
	return func(s *Service) { s.writeDelay = d }
}

// WithObserver registers a callback invoked with the new state after every
// successful mutation. Saves do not self-notify through the repository, so
// the writing side's derived views (the badge counter) are updated here.
func WithObserver(fn func(State)) Option {
	return func(s *Service) { s.observer = fn }
}

// NewService wires the mutation protocol to a repository and order service.
func NewService(repo Repository, orders OrderPlacer, opts ...Option) *Service {
	s := &Service{repo: repo, orders: orders}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current persisted cart.
func (s *Service) State() State { return s.repo.Load() }

// Add merges one unit of the product into the cart and persists.
func (s *Service) Add(ctx context.Context, p catalog.Product) (State, error) {
	return s.mutate(ctx, func(st State) State { return st.Add(p) })
}

// AddN issues n awaited sequential Adds, each persisting before the next
// begins. This mirrors the detail view's unit-by-unit pacing; it is not
// atomic, and another writer may interleave between units.
func (s *Service) AddN(ctx context.Context, p catalog.Product, n int) (State, error) {
	if n < 1 {
		n = 1
	}
	var (
		st  State
		err error
	)
	for i := 0; i < n; i++ {
		st, err = s.Add(ctx, p)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

// SetQuantity sets a line's quantity; below 1 removes the line.
func (s *Service) SetQuantity(ctx context.Context, id, quantity int) (State, error) {
	return s.mutate(ctx, func(st State) State { return st.SetQuantity(id, quantity) })
}

// Remove drops the line for the product id.
func (s *Service) Remove(ctx context.Context, id int) (State, error) {
	return s.mutate(ctx, func(st State) State { return st.Remove(id) })
}

// Clear empties the cart. Callers gate this behind an explicit user
// confirmation; the service assumes consent was already given.
func (s *Service) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, func(st State) State { return st.Clear() })
}

// Checkout places the order through the collaborator and clears the cart
// only on reported success, leaving it intact when the order service fails.
func (s *Service) Checkout(ctx context.Context) (OrderConfirmation, error) {
	st := s.repo.Load()
	conf, err := s.orders.PlaceOrder(ctx, st)
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("cart: checkout: %w", err)
	}
	if _, err := s.Clear(ctx); err != nil {
		return conf, err
	}
	return conf, nil
}

func (s *Service) mutate(ctx context.Context, transition func(State) State) (State, error) {
	if s.writeDelay > 0 {
		select {
		case <-time.After(s.writeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := transition(s.repo.Load())
	if err := s.repo.Save(next); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	if s.observer != nil {
		s.observer(next)
	}
	return next, nil
}
