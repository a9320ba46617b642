package models

import "time"

type PostType string

const (
	PostTypeText       PostType = "text"
	PostTypePhotoAlbum PostType = "photoAlbum"
	PostTypeVideo      PostType = "video"
)

// Valid reports whether t is one of the three supported post types.
func (t PostType) Valid() bool {
	switch t {
	case PostTypeText, PostTypePhotoAlbum, PostTypeVideo:
		return true
	}
	return false
}

// PostInput is the client-supplied shape of a new post, before the store
// assigns identity and a creation timestamp.
type PostInput struct {
	Type      PostType `json:"type"`
	Content   string   `json:"content"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	VideoURL  string   `json:"videoUrl,omitempty"`
}

// Post is the canonical record as held by the durable store. Exactly one of
// MediaURLs (photoAlbum) or VideoURL (video) is populated; a text post has
// neither.
type Post struct {
	ID        string    `json:"id"`
	Type      PostType  `json:"type"`
	Content   string    `json:"content"`
	MediaURLs []string  `json:"mediaUrls,omitempty"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CacheEntry is the denormalized projection of a Post held by the recency
// cache. CreatedAt is carried as unix milliseconds, which is the form the
// cache table stores and sorts by.
type CacheEntry struct {
	ID        string   `json:"id" dynamodbav:"id"`
	Type      PostType `json:"type" dynamodbav:"type"`
	Content   string   `json:"content" dynamodbav:"content"`
	MediaURLs []string `json:"mediaUrls,omitempty" dynamodbav:"mediaUrls,omitempty"`
	VideoURL  string   `json:"videoUrl,omitempty" dynamodbav:"videoUrl,omitempty"`
	CreatedAt int64    `json:"createdAt" dynamodbav:"createdAt"`
}

// ToCacheEntry projects a durably-confirmed Post into its cache form.
func ToCacheEntry(p Post) CacheEntry {
	return CacheEntry{
		ID:        p.ID,
		Type:      p.Type,
		Content:   p.Content,
		MediaURLs: p.MediaURLs,
		VideoURL:  p.VideoURL,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}

// Post converts a cache entry back into the canonical shape. The timestamp
// is restored at millisecond precision, in UTC.
func (e CacheEntry) Post() Post {
	return Post{
		ID:        e.ID,
		Type:      e.Type,
		Content:   e.Content,
		MediaURLs: e.MediaURLs,
		VideoURL:  e.VideoURL,
		CreatedAt: time.UnixMilli(e.CreatedAt).UTC(),
	}
}
