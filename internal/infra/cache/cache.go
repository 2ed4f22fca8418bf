// Package cache provides an in-memory TTL cache.
// Dashboard sessions live here; entries vanish when their TTL lapses.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Option configures an InMemory cache.
type Option func(*options)

type options struct {
	sliding bool
}

// WithSlidingExpiration renews an entry's TTL on every successful Get,
// so idle sessions expire but active ones do not.
func WithSlidingExpiration() Option {
	return func(o *options) { o.sliding = true }
}

// InMemory is a thread-safe in-memory cache with TTL.
type InMemory[T any] struct {
	mu      sync.RWMutex
	items   map[string]entry[T]
	ttl     time.Duration
	sliding bool

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a new in-memory cache with the given TTL.
// A background goroutine evicts expired entries until Close is called.
func New[T any](ttl time.Duration, opts ...Option) *InMemory[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &InMemory[T]{
		items:   make(map[string]entry[T]),
		ttl:     ttl,
		sliding: o.sliding,
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value from the cache. Returns false if not found or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	if c.sliding {
		return c.getAndRenew(key)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *InMemory[T]) getAndRenew(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	e, ok := c.items[key]
	if !ok || now.After(e.expiresAt) {
		var zero T
		return zero, false
	}
	e.expiresAt = now.Add(c.ttl)
	c.items[key] = e
	return e.value, true
}

// Set stores a value in the cache with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes a value from the cache.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len returns the number of stored entries, expired ones included until evicted.
func (c *InMemory[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Close stops the background eviction goroutine. The cache stays usable.
func (c *InMemory[T]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries.
func (c *InMemory[T]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *InMemory[T]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
}
