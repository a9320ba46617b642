package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/api"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/pagecache"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/upload"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseCursor accepts the createdAt of the last seen post as either RFC 3339
// or unix milliseconds.
func parseCursor(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &ts, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		ts := time.UnixMilli(ms).UTC()
		return &ts, nil
	}
	return nil, errors.New("cursor must be RFC 3339 or unix milliseconds")
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := feed.DefaultPageSize
	if rawLimit := q.Get("limit"); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	cursor, err := parseCursor(q.Get("cursor"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	// only the cursorless page is cacheable, and a cache miss or failure
	// just falls through to a normal read
	cacheable := s.pages != nil && cursor == nil
	key := pagecache.FirstPageKey(limit)
	if cacheable {
		if body, ok := s.pages.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}
	}

	items, err := s.api.ListPosts(ctx, cursor, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "error fetching posts")
		return
	}

	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "error encoding posts")
		return
	}
	if cacheable {
		s.pages.Set(ctx, key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	post, err := s.api.CreatePost(ctx, input)
	if err != nil {
		if feed.IsValidation(err) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "error creating post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"postId": post.ID})
}

func (s *Server) handleUploadURLs(w http.ResponseWriter, r *http.Request) {
	var req upload.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	urls, err := s.api.UploadURLs(ctx, req)
	if err != nil {
		switch {
		case feed.IsValidation(err):
			jsonError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, api.ErrUploadsDisabled):
			jsonError(w, http.StatusServiceUnavailable, err.Error())
		default:
			jsonError(w, http.StatusInternalServerError, "error generating upload urls")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"urls": urls})
}
