package api

import (
	"errors"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/upload"
)

// ErrUploadsDisabled is returned when no upload bucket is configured.
var ErrUploadsDisabled = errors.New("uploads not configured")

// API is the application-facing facade. All callers (HTTP, CLI) go through
// this.
type API struct {
	posts   *feed.Service
	reader  *feed.Reader
	uploads *upload.Service
}

// New builds the facade. uploads may be nil when no bucket is configured.
func New(posts *feed.Service, reader *feed.Reader, uploads *upload.Service) *API {
	return &API{posts: posts, reader: reader, uploads: uploads}
}

// Health responds with the health status of the app.
func (a *API) Health() any {
	return map[string]any{
		"app":       "pwa-microblog",
		"startedAt": time.Now().Format(time.RFC3339),
		"status":    "ok",
	}
}
