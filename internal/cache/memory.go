package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory verdict caching. It is safe for
// concurrent use by the file workers
type MemoryCache struct {
	cache  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemoryCache creates a new memory cache. A zero ttl falls back to
// DefaultTTL; a zero cleanupInterval to DefaultCleanupInterval
func NewMemoryCache(ttl time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &MemoryCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get retrieves a verdict from the cache
func (c *MemoryCache) Get(token string) (bool, bool) {
	if val, found := c.cache.Get(key(token)); found {
		c.hits.Add(1)
		return val.(bool), true
	}
	c.misses.Add(1)
	return false, false
}

// Set stores a verdict with the cache's TTL
func (c *MemoryCache) Set(token string, correct bool) {
	c.cache.Set(key(token), correct, gocache.DefaultExpiration)
}

// Stats returns hit/miss counters and the current item count
func (c *MemoryCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Items:  c.cache.ItemCount(),
	}
}

// key namespaces a token so verdicts never collide with other entries
// sharing the store
func key(token string) string {
	return "spchk:v1:" + token
}
