package feed

import (
	"context"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// StorePort is the durable system of record for posts. Insert assigns
// identity and the creation timestamp; RangeBefore pages the feed with a
// keyset cursor.
type StorePort interface {
	Insert(ctx context.Context, input models.PostInput) (id string, createdAt time.Time, err error)
	GetByID(ctx context.Context, id string) (models.Post, bool, error)
	RangeBefore(ctx context.Context, cursor *time.Time, limit int) ([]models.Post, error)
}

// CachePort is the bounded recency cache holding the most recent posts.
// ScanAll returns every entry; callers sort and trim.
type CachePort interface {
	Put(ctx context.Context, entry models.CacheEntry) error
	ScanAll(ctx context.Context) ([]models.CacheEntry, error)
	Delete(ctx context.Context, id string) error
}
