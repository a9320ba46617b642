// Package pagecache caches rendered first-page feed responses. It sits in
// front of the feed reader at the HTTP boundary: a hit skips both stores, a
// miss or any cache failure falls through to a normal read. Entries expire
// by TTL and are never invalidated on write, so a cached page may lag new
// posts by up to the TTL.
package pagecache

import (
	"context"
	"fmt"
)

type PageCache interface {
	// Get returns the cached body for key, or ok=false on miss. Cache
	// failures are reported as misses, never as errors.
	Get(ctx context.Context, key string) (body []byte, ok bool)
	Set(ctx context.Context, key string, body []byte)
}

// FirstPageKey names the cached cursorless page for a given page size.
func FirstPageKey(limit int) string {
	return fmt.Sprintf("posts:first:limit:%d", limit)
}
