package store

import (
	"sync"

	"github.com/gcbaptista/styleguide-search/model"
)

// CachedProvider keeps fully loaded collections in memory.
// A collection becomes visible only after its load has completed; failed loads are not cached.
type CachedProvider struct {
	mu          sync.RWMutex
	next        Provider
	collections map[string][]model.Record
}

// NewCachedProvider wraps next with a read-only cache.
func NewCachedProvider(next Provider) *CachedProvider {
	return &CachedProvider{
		next:        next,
		collections: make(map[string][]model.Record),
	}
}

// Load returns the cached collection, loading it from the wrapped provider on first use.
func (c *CachedProvider) Load(source string) ([]model.Record, error) {
	c.mu.RLock()
	records, ok := c.collections[source]
	c.mu.RUnlock()
	if ok {
		return records, nil
	}

	records, err := c.next.Load(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have loaded the same source concurrently; keep the first
	if existing, ok := c.collections[source]; ok {
		return existing, nil
	}
	c.collections[source] = records
	return records, nil
}

// Invalidate drops a cached collection so the next Load reads it again.
func (c *CachedProvider) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.collections, source)
}

// Len returns the number of cached collections.
func (c *CachedProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.collections)
}
