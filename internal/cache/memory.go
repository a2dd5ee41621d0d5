// Package cache keeps recently fetched price series and rendered charts in memory.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	createdAt time.Time
	value     V
}

// TTL is a mutex-guarded map whose entries expire after a fixed lifetime.
// Values pass through copy on both Set and Get so callers never share state
// with the cache.
type TTL[V any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry[V]
	copy  func(V) V
	now   func() time.Time
}

// NewTTL creates a cache. copyFn may be nil for immutable values.
func NewTTL[V any](ttl time.Duration, copyFn func(V) V) *TTL[V] {
	if copyFn == nil {
		copyFn = func(v V) V { return v }
	}
	return &TTL[V]{ttl: ttl, items: map[string]entry[V]{}, copy: copyFn, now: time.Now}
}

// Get returns a copy of a live entry.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.createdAt.Add(c.ttl)) {
		delete(c.items, key)
		return zero, false
	}
	return c.copy(e.value), true
}

// Set stores a copy of v under key.
func (c *TTL[V]) Set(key string, v V) {
	c.mu.Lock()
	c.items[key] = entry[V]{createdAt: c.now(), value: c.copy(v)}
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *TTL[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	now := c.now()
	for k, e := range c.items {
		if now.After(e.createdAt.Add(c.ttl)) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CopyBytes is the copy function for []byte values such as PNG images.
func CopyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
