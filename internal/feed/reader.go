package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// DefaultPageSize is the page size used when the caller does not pick one.
const DefaultPageSize = 10

// Reader serves paginated feed reads. The first page is preferred out of the
// recency cache; everything else comes from the durable store.
type Reader struct {
	store  StorePort
	cache  CachePort
	logger *slog.Logger
}

func NewReader(store StorePort, cache CachePort, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{store: store, cache: cache, logger: logger}
}

// Page returns up to limit posts ordered by createdAt descending.
//
// With no cursor, the cache is scanned first and serves the page whenever it
// holds at least limit entries; otherwise (including on a cache failure) the
// read falls through to the durable store. With a cursor the cache is
// bypassed and the store is queried for rows strictly older than the cursor.
//
// Rows from the cache and the store are never mixed within one page. The two
// sources are updated independently, so a post seen on a cache-served first
// page may repeat or go missing when pagination falls through to the store;
// that boundary is a known consistency gap, not reconciled here.
func (r *Reader) Page(ctx context.Context, cursor *time.Time, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if cursor == nil {
		entries, err := r.cache.ScanAll(ctx)
		if err != nil {
			r.logger.Warn("cache scan failed, falling back to store", "error", err)
		} else if len(entries) >= limit {
			sortByRecency(entries)
			posts := make([]models.Post, 0, limit)
			for _, e := range entries[:limit] {
				posts = append(posts, e.Post())
			}
			return posts, nil
		}
	}

	posts, err := r.store.RangeBefore(ctx, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	return posts, nil
}
