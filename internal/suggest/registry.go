package suggest

import (
	"sync"
	"time"
)

// sessionTTL bounds how long an idle visitor keeps its fetcher. Session ids
// come from client cookies, so the map would otherwise grow with every
// cookie-less request.
const sessionTTL = 30 * time.Minute

// Registry hands out one Fetcher per visitor session, so each search box
// debounces independently. Idle sessions are evicted lazily on lookup.
type Registry struct {
	newFetcher func() *Fetcher
	ttl        time.Duration
	now        func() time.Time

	mu sync.Mutex
	m  map[string]*registryEntry
}

type registryEntry struct {
	fetcher  *Fetcher
	lastUsed time.Time
}

// NewRegistry builds a registry using the factory for new sessions.
func NewRegistry(newFetcher func() *Fetcher) *Registry {
	return &Registry{
		newFetcher: newFetcher,
		ttl:        sessionTTL,
		now:        time.Now,
		m:          map[string]*registryEntry{},
	}
}

// For returns the session's fetcher, creating it on first use and stamping
// it as live. Entries idle past the TTL are dropped on the way in.
func (r *Registry) For(sessionID string) *Fetcher {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.m {
		if now.Sub(e.lastUsed) > r.ttl {
			delete(r.m, id)
		}
	}

	e, ok := r.m[sessionID]
	if !ok {
		e = &registryEntry{fetcher: r.newFetcher()}
		r.m[sessionID] = e
	}
	e.lastUsed = now
	return e.fetcher
}
