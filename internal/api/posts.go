package api

import (
	"context"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/upload"
)

// CreatePost validates and durably creates a post, admitting it into the
// recency cache best-effort.
func (a *API) CreatePost(ctx context.Context, input models.PostInput) (models.Post, error) {
	return a.posts.Create(ctx, input)
}

// ListPosts returns one feed page, newest first. A nil cursor means the
// first page.
func (a *API) ListPosts(ctx context.Context, cursor *time.Time, limit int) ([]models.Post, error) {
	return a.reader.Page(ctx, cursor, limit)
}

// UploadURLs issues presigned upload URLs for the media of a post.
func (a *API) UploadURLs(ctx context.Context, req upload.Request) ([]upload.URL, error) {
	if a.uploads == nil {
		return nil, ErrUploadsDisabled
	}
	return a.uploads.URLs(ctx, req)
}
