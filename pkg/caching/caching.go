// Package caching provides the in-memory TTL store backing metadata and
// favicon lookups. Entries can be negative: a remembered "not found" result
// with its own lifetime, distinct from a plain miss.
package caching

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	negative  bool
	expiresAt time.Time
}

// Cache is a concurrent key-value store with per-entry TTLs. Expired entries
// are dropped lazily on read.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*entry
	sf    singleflight.Group
}

func New() *Cache {
	return &Cache{items: make(map[string]*entry)}
}

// Get returns the stored value for key. A negative entry reports ok=true with
// negative=true and a nil value.
func (c *Cache) Get(key string) (value any, negative bool, ok bool) {
	c.mu.RLock()
	e, found := c.items[key]
	c.mu.RUnlock()
	if !found {
		return nil, false, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have refreshed it.
		if cur, still := c.items[key]; still && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false, false
	}
	return e.value, e.negative, true
}

// Set stores value under key for ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = &entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// SetNegative remembers that the lookup for key had no result.
func (c *Cache) SetNegative(key string, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = &entry{negative: true, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]*entry)
	c.mu.Unlock()
}

// Len counts entries that have not yet expired.
func (c *Cache) Len() int {
	now := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.items {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Do collapses concurrent loads for the same key into a single call, so two
// requests racing on a cold key compute the value once. Duplicate computation
// would be harmless, just wasteful upstream traffic.
func (c *Cache) Do(key string, fn func() (any, error)) (any, error) {
	v, err, _ := c.sf.Do(key, fn)
	return v, err
}
