// Package cache holds the in-process memo of ranked result lists.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Defaults for NewResultCache.
const (
	DefaultMaxAge   = 5 * time.Minute
	DefaultCapacity = 100
)

// ResultCache memoizes result lists by key for a bounded time and count.
// Expired entries are dropped lazily on Get; when full, Set evicts the
// entry that was inserted first. It is safe for concurrent use.
//
// Cached slices are shared: callers must not modify what Get returns.
type ResultCache[T any] struct {
	mu       sync.Mutex
	maxAge   time.Duration
	capacity int
	now      func() time.Time
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
}

type entry[T any] struct {
	key      string
	results  []T
	storedAt time.Time
}

// Option configures a ResultCache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewResultCache creates a cache. Non-positive maxAge or capacity fall back
// to DefaultMaxAge and DefaultCapacity.
func NewResultCache[T any](maxAge time.Duration, capacity int, opts ...Option) *ResultCache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ResultCache[T]{
		maxAge:   maxAge,
		capacity: capacity,
		now:      o.now,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the list stored under key. An entry older than maxAge is a
// miss and is removed.
func (c *ResultCache[T]) Get(key string) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry[T])
	if c.now().Sub(e.storedAt) > c.maxAge {
		c.remove(elem)
		return nil, false
	}
	return e.results, true
}

// Set stores results under key. Re-setting a key counts as a new insertion.
func (c *ResultCache[T]) Set(key string, results []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
	if c.order.Len() >= c.capacity {
		c.remove(c.order.Front())
	}

	e := &entry[T]{key: key, results: results, storedAt: c.now()}
	c.entries[key] = c.order.PushBack(e)
}

// Len returns the number of stored entries, expired ones included.
func (c *ResultCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Reset drops every entry.
func (c *ResultCache[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

func (c *ResultCache[T]) remove(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(c.entries, e.key)
	c.order.Remove(elem)
}
