// Package cache is a small TTL cache for listing responses, keyed by
// the active filter set. Mutations invalidate everything rather than
// the single affected key; precision is not worth the bookkeeping at
// this scale.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL keeps listings fresh enough for a shared office screen
// without hitting the store on every poll.
const DefaultTTL = 30 * time.Second

type entry struct {
	value    interface{}
	storedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or nil and false when the entry
// is absent or older than the TTL.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// InvalidateAll drops every entry. Called after any mutating operation.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
