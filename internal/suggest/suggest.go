// Package suggest implements the query-as-you-type suggestion pipeline: a
// debounce window coalesces keystrokes, and a sequence guard makes sure a
// late arrival for superseded input can never surface.
package suggest

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"vitrineshop.org/vitrine-web/internal/catalog"
)

// DefaultWindow is the quiet period after the last keystroke before a fetch
// dispatches.
const DefaultWindow = 200 * time.Millisecond

// ErrSuperseded resolves a keystroke that was overtaken by newer input
// before its fetch could complete.
var ErrSuperseded = errors.New("suggest: superseded by newer input")

// Searcher is the slice of the catalog client the fetcher needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit, skip int) (catalog.Page, error)
}

// Fetcher coalesces keystrokes into at most one suggestion fetch per quiet
// period. Each keystroke cancels a pending timer; an already-dispatched
// fetch keeps running but its result is discarded if the input has moved on.
type Fetcher struct {
	searcher Searcher
	window   time.Duration
	limit    int
	timeout  time.Duration

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	pending *Ticket
	results []catalog.Product
	open    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(f *Fetcher) { f.window = d }
}

// WithLimit caps the number of suggestions fetched.
func WithLimit(n int) Option {
	return func(f *Fetcher) { f.limit = n }
}

// NewFetcher builds a fetcher over the searcher.
func NewFetcher(searcher Searcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		searcher: searcher,
		window:   DefaultWindow,
		limit:    8,
		timeout:  8 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ticket tracks the outcome of one keystroke.
type Ticket struct {
	done     chan struct{}
	items    []catalog.Product
	err      error
	resolved bool
}

// Wait blocks until the keystroke's fetch resolves, the keystroke is
// superseded, or ctx ends.
func (t *Ticket) Wait(ctx context.Context) ([]catalog.Product, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.items, t.err
	}
}

// Type records a keystroke. Any pending timer is cancelled and rescheduled
// one window out; the previous unresolved keystroke resolves as superseded.
// An empty query short-circuits: the suggestion list is cleared and no
// fetch dispatches.
func (f *Fetcher) Type(query string) *Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	seq := f.seq
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if f.pending != nil {
		f.resolveLocked(f.pending, nil, ErrSuperseded)
	}

	t := &Ticket{done: make(chan struct{})}
	f.pending = t
	if query == "" {
		f.results = nil
		f.open = false
		f.resolveLocked(t, nil, nil)
		f.pending = nil
		return t
	}
	f.timer = time.AfterFunc(f.window, func() { f.fetch(seq, query, t) })
	return t
}

// Results returns the current suggestion list and whether the panel is open.
func (f *Fetcher) Results() ([]catalog.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results, f.open
}

// Select closes the panel after a suggestion was chosen.
func (f *Fetcher) Select() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

// Clear empties the list and closes the panel.
func (f *Fetcher) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = nil
	f.open = false
}

func (f *Fetcher) fetch(seq uint64, query string, t *Ticket) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	page, err := f.searcher.Search(ctx, query, f.limit, 0)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		// Newer input arrived while this fetch was in flight; drop it.
		return
	}
	f.pending = nil
	if err != nil {
		log.Printf("suggest: fetch %q: %v", query, err)
		f.resolveLocked(t, nil, err)
		return
	}
	f.results = page.Products
	f.open = true
	f.resolveLocked(t, page.Products, nil)
}

func (f *Fetcher) resolveLocked(t *Ticket, items []catalog.Product, err error) {
	if t.resolved {
		return
	}
	t.items = items
	t.err = err
	t.resolved = true
	close(t.done)
}
