package feed

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// DefaultCapacity is how many recent posts the cache retains.
const DefaultCapacity = 10

// Synchronizer admits newly created posts into the recency cache and trims
// it back to capacity.
type Synchronizer struct {
	cache    CachePort
	capacity int
	logger   *slog.Logger
}

func NewSynchronizer(cache CachePort, capacity int, logger *slog.Logger) *Synchronizer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{cache: cache, capacity: capacity, logger: logger}
}

// Admit writes post into the cache, then scans, sorts by recency and deletes
// everything past capacity, oldest first. A failed eviction is logged and
// folded into the returned error without undoing deletes that already
// happened; the cache may stay over capacity until the next successful run.
//
// Capacity enforcement is best-effort: two overlapping Admit calls can each
// scan before the other trims, so strict enforcement under concurrent
// writers is explicitly not guaranteed.
func (s *Synchronizer) Admit(ctx context.Context, post models.Post) error {
	if err := s.cache.Put(ctx, models.ToCacheEntry(post)); err != nil {
		return fmt.Errorf("cache put %s: %w", post.ID, err)
	}

	entries, err := s.cache.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	sortByRecency(entries)
	if len(entries) <= s.capacity {
		return nil
	}

	var evictErr error
	for _, e := range entries[s.capacity:] {
		if err := s.cache.Delete(ctx, e.ID); err != nil {
			s.logger.Error("evict cache entry", "id", e.ID, "error", err)
			if evictErr == nil {
				evictErr = err
			}
		}
	}
	if evictErr != nil {
		return fmt.Errorf("cache trim: %w", evictErr)
	}
	return nil
}

// sortByRecency orders entries newest first. Order among equal timestamps
// is unspecified.
func sortByRecency(entries []models.CacheEntry) {
	slices.SortFunc(entries, func(a, b models.CacheEntry) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
}
