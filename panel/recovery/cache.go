package recovery

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	fallbackCacheSize = 500
	fallbackCacheTTL  = 5 * time.Minute
)

// FallbackCache holds the last good response per (node, operation) so reads
// can degrade to slightly stale data while a node is unreachable. Entries
// expire; five-minute-old stats are still a better answer than an error,
// older ones are not.
type FallbackCache struct {
	lru *expirable.LRU[string, any]
}

// NewFallbackCache builds the cache with the standard bounds.
func NewFallbackCache() *FallbackCache {
	return &FallbackCache{
		lru: expirable.NewLRU[string, any](fallbackCacheSize, nil, fallbackCacheTTL),
	}
}

// Put stores the latest good response for a key.
func (c *FallbackCache) Put(key string, value any) {
	c.lru.Add(key, value)
}

// Get returns the cached response and whether one was present.
func (c *FallbackCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Invalidate drops a key, for when the caller knows the data is wrong.
func (c *FallbackCache) Invalidate(key string) {
	c.lru.Remove(key)
}
