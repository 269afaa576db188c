package imagegen

import (
	"sync"
	"time"
)

type cardEntry struct {
	data      []byte
	expiresAt time.Time
}

// CardCache caches rendered cards by request key for a short period.
type CardCache struct {
	mu       sync.RWMutex
	entries  map[string]cardEntry
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCardCache creates a card cache with the specified TTL.
func NewCardCache(ttl time.Duration) *CardCache {
	return &CardCache{
		entries:  make(map[string]cardEntry),
		cacheTTL: ttl,
		now:      time.Now,
	}
}

// Get returns the cached card for key if still valid.
func (c *CardCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.data, true
}

// Set stores a card, dropping any expired entries.
func (c *CardCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cardEntry{data: data, expiresAt: now.Add(c.cacheTTL)}
}
