package filter

import (
	"sync"
	"time"
)

// Registry keeps one controller per (subject, page). Page instances live
// until they are dropped or left idle longer than the TTL.
type Registry[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	pages map[registryKey]*Controller[T]
}

type registryKey struct {
	subject string
	page    string
}

// NewRegistry creates a registry. A non-positive ttl disables expiry.
func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[registryKey]*Controller[T]),
	}
}

// Get returns the live controller for the page, building it with create
// when there is none. created reports whether create was called.
func (r *Registry[T]) Get(subject, page string, create func() (*Controller[T], error)) (c *Controller[T], created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	key := registryKey{subject: subject, page: page}
	if c, ok := r.pages[key]; ok {
		return c, false, nil
	}

	c, err = create()
	if err != nil {
		return nil, false, err
	}
	r.pages[key] = c
	return c, true, nil
}

// Lookup returns the live controller without creating one
func (r *Registry[T]) Lookup(subject, page string) (*Controller[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	c, ok := r.pages[registryKey{subject: subject, page: page}]
	return c, ok
}

// Drop destroys the page instance, as when navigating away
func (r *Registry[T]) Drop(subject, page string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := registryKey{subject: subject, page: page}
	_, ok := r.pages[key]
	delete(r.pages, key)
	return ok
}

// DropSubject destroys every page instance of a subject (logout)
func (r *Registry[T]) DropSubject(subject string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.pages {
		if k.subject == subject {
			delete(r.pages, k)
			n++
		}
	}
	return n
}

// Len reports the number of live page instances
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Sweep removes expired page instances and reports how many went
func (r *Registry[T]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry[T]) sweepLocked() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for k, c := range r.pages {
		if c.lastTouched().Before(cutoff) {
			delete(r.pages, k)
			n++
		}
	}
	return n
}
