package cache

import (
	"context"
	"sync"
)

// Fetch queries the backend for the id of key. found is false when the
// resource does not exist; err is reserved for backend failures.
type Fetch func(ctx context.Context, key string) (id string, found bool, err error)

type entryKey struct {
	resourceType string
	key          string
}

// KeyCache maps (resource type, key) to internal ids.
//
// Entries are write-once: the first id stored for a key wins and later Puts
// for the same key are ignored. Concurrent misses on the same key may fetch
// twice; both fetches yield the same id, so the duplicate is harmless.
//
// Thread-safety: All methods are safe for concurrent use.
type KeyCache struct {
	mu      sync.RWMutex
	entries map[entryKey]string
	metrics *Metrics
}

// Option configures a KeyCache.
type Option func(*KeyCache)

// WithMetrics records hits and misses on m.
func WithMetrics(m *Metrics) Option {
	return func(c *KeyCache) {
		c.metrics = m
	}
}

// New creates an empty cache.
func New(opts ...Option) *KeyCache {
	c := &KeyCache{entries: make(map[entryKey]string)}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c
}

// Get returns the cached id for key without touching the backend.
func (c *KeyCache) Get(resourceType, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[entryKey{resourceType, key}]
	return id, ok
}

// Put stores id for key unless an id is already cached.
// It returns the id that is cached after the call.
func (c *KeyCache) Put(resourceType, key, id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := entryKey{resourceType, key}
	if existing, ok := c.entries[k]; ok {
		return existing
	}
	c.entries[k] = id
	return id
}

// FetchCachedID returns the id for key, calling fetch on a miss.
//
// A found id is cached. A missing resource returns found=false and is not
// cached. A fetch error is returned unchanged.
func (c *KeyCache) FetchCachedID(ctx context.Context, resourceType, key string, fetch Fetch) (string, bool, error) {
	if id, ok := c.Get(resourceType, key); ok {
		c.metrics.Hits.WithLabelValues(resourceType).Inc()
		return id, true, nil
	}
	c.metrics.Misses.WithLabelValues(resourceType).Inc()

	id, found, err := fetch(ctx, key)
	if err != nil || !found {
		return "", false, err
	}
	return c.Put(resourceType, key, id), true, nil
}

// Lookup binds the cache to one resource type and its fetcher.
func (c *KeyCache) Lookup(resourceType string, fetch Fetch) func(ctx context.Context, key string) (string, bool, error) {
	return func(ctx context.Context, key string) (string, bool, error) {
		return c.FetchCachedID(ctx, resourceType, key, fetch)
	}
}

// Len returns the number of cached entries across all resource types.
func (c *KeyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
