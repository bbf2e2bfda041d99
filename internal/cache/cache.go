package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ArchiveCache holds generated export archives for a bounded time so
// repeated downloads do not rebuild the ZIP on every request.
// Aggregation query results are never cached here.
type ArchiveCache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// New creates an ArchiveCache whose entries expire after ttl.
func New(ttl time.Duration) *ArchiveCache {
	return &ArchiveCache{
		store: gocache.New(ttl, ttl/2+time.Minute),
	}
}

// Get returns the cached archive under key, or nil when absent or
// expired.
func (c *ArchiveCache) Get(key string) []byte {
	v, found := c.store.Get(key)
	if !found {
		c.misses.Add(1)
		return nil
	}
	c.hits.Add(1)
	return v.([]byte)
}

// Set stores an archive under key with the default TTL.
func (c *ArchiveCache) Set(key string, data []byte) {
	c.store.Set(key, data, gocache.DefaultExpiration)
}

// Stats returns current hit/miss counters and the live entry count.
func (c *ArchiveCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.store.ItemCount(),
	}
}
