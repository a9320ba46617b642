package cache

import (
	"context"
	"sync"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// MemoryCache is an in-process recency cache for local runs and tests. Safe
// for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]models.CacheEntry
}

var _ feed.CachePort = (*MemoryCache)(nil)

func NewMemory() *MemoryCache {
	return &MemoryCache{entries: make(map[string]models.CacheEntry)}
}

func (c *MemoryCache) Put(_ context.Context, entry models.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.ID] = entry
	return nil
}

func (c *MemoryCache) ScanAll(_ context.Context) ([]models.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out, nil
}

func (c *MemoryCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}
