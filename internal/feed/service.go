package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// Service is the post ingest path: validate, write to the durable store,
// confirm, then admit into the recency cache.
type Service struct {
	store  StorePort
	sync   *Synchronizer
	logger *slog.Logger
}

func New(store StorePort, sync *Synchronizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, sync: sync, logger: logger}
}

// Create validates input, inserts the post and reads it back to confirm
// durability and pick up the store-assigned id and timestamp. Cache
// admission is best-effort: a synchronizer failure is logged and the create
// still succeeds, since reads fall back to the durable store on their own.
func (s *Service) Create(ctx context.Context, input models.PostInput) (models.Post, error) {
	if err := validate(input); err != nil {
		return models.Post{}, err
	}

	id, _, err := s.store.Insert(ctx, input)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}

	post, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("read back post %s: %w", id, err)
	}
	if !found {
		return models.Post{}, fmt.Errorf("post %s: %w", id, ErrCreationFailed)
	}

	if err := s.sync.Admit(ctx, post); err != nil {
		s.logger.Error("cache admission failed", "id", post.ID, "error", err)
	}
	return post, nil
}

func validate(in models.PostInput) error {
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be text, photoAlbum or video"}
	}
	if in.Content == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	switch in.Type {
	case models.PostTypePhotoAlbum:
		if len(in.MediaURLs) == 0 {
			return &ValidationError{Field: "mediaUrls", Reason: "photoAlbum requires at least one media url"}
		}
	case models.PostTypeVideo:
		if in.VideoURL == "" {
			return &ValidationError{Field: "videoUrl", Reason: "video requires a video url"}
		}
	}
	return nil
}
