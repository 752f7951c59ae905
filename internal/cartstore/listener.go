package cartstore

import (
	"sync"

	"vitrineshop.org/vitrine-web/internal/cart"
)

// Counter keeps the cart badge's total-item count live. It seeds itself
// from the repository, follows external writers through the subscription,
// and is fed directly by the local writing path (which does not self-notify
// through the repository).
type Counter struct {
	mu    sync.Mutex
	items int
}

// NewCounter builds a counter over the repository. The returned cancel func
// detaches it from the subscription.
func NewCounter(repo cart.Repository) (*Counter, func()) {
	c := &Counter{}
	c.Apply(repo.Load())
	cancel := repo.Subscribe(c.Apply)
	return c, cancel
}

// Items returns the current badge count.
func (c *Counter) Items() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Apply recomputes the count from a cart state.
func (c *Counter) Apply(state cart.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = state.TotalItems()
}
