// Package cache memoizes projections in memory, keyed by a fingerprint of
// the plan that produced them.
package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the given byte slices into a cache key. Each part is
// length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...[]byte) uint64 {
	d := xxhash.New()
	var size [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		_, _ = d.Write(size[:])
		_, _ = d.Write(p)
	}
	return d.Sum64()
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTL is a thread-safe in-memory cache whose entries expire after a fixed
// lifetime.
type TTL[T any] struct {
	mu    sync.RWMutex
	items map[uint64]entry[T]
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache with the given TTL and starts a background sweep of
// expired entries. Call Close to stop it.
func New[T any](ttl time.Duration) *TTL[T] {
	c := &TTL[T]{
		items: make(map[uint64]entry[T]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanup()
	}
	return c
}

// Get retrieves a value. Returns false if not found or expired.
func (c *TTL[T]) Get(key uint64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || c.now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the configured TTL. A cache with a non-positive
// TTL stores nothing.
func (c *TTL[T]) Set(key uint64, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the background sweep. It is safe to call more than once.
func (c *TTL[T]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTL[T]) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
}

func (c *TTL[T]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.purge()
		case <-c.stop:
			return
		}
	}
}
