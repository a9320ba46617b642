package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

const (
	photoExpiry     = 15 * time.Minute
	videoPartExpiry = 5 * time.Minute
	photoPrefix     = "photos"
	videoPrefix     = "videos"
)

// Presigner issues a signed PUT URL for one object key.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

// Request asks for upload URLs for the media of a post about to be created.
type Request struct {
	Type       models.PostType `json:"type"`
	MediaFiles []string        `json:"mediaFiles,omitempty"`
	VideoFile  string          `json:"videoFile,omitempty"`
	VideoParts int             `json:"videoParts,omitempty"`
}

// URL is one issued upload URL: photo URLs carry the file name they were
// issued for, video URLs the part number.
type URL struct {
	FileName   string `json:"fileName,omitempty"`
	PartNumber int    `json:"partNumber,omitempty"`
	URL        string `json:"url"`
}

// Service issues presigned upload URLs. Object keys are prefixed with the
// request time in unix milliseconds so repeated uploads of the same file
// name never collide.
type Service struct {
	presigner Presigner
	now       func() time.Time
	logger    *slog.Logger
}

func New(presigner Presigner, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{presigner: presigner, now: now, logger: logger}
}

// URLs validates the request against the post type and returns one signed
// URL per photo, or one per video part.
func (s *Service) URLs(ctx context.Context, req Request) ([]URL, error) {
	switch req.Type {
	case models.PostTypePhotoAlbum:
		if len(req.MediaFiles) == 0 {
			return nil, &feed.ValidationError{Field: "mediaFiles", Reason: "photoAlbum requires at least one file"}
		}
		return s.photoURLs(ctx, req.MediaFiles)
	case models.PostTypeVideo:
		if req.VideoFile == "" {
			return nil, &feed.ValidationError{Field: "videoFile", Reason: "video requires a file name"}
		}
		parts := req.VideoParts
		if parts <= 0 {
			parts = 1
		}
		return s.videoPartURLs(ctx, req.VideoFile, parts)
	default:
		return nil, &feed.ValidationError{Field: "type", Reason: "uploads apply to photoAlbum and video posts"}
	}
}

func (s *Service) photoURLs(ctx context.Context, fileNames []string) ([]URL, error) {
	stamp := s.now().UnixMilli()
	out := make([]URL, 0, len(fileNames))
	for _, name := range fileNames {
		key := fmt.Sprintf("%s/%d-%s", photoPrefix, stamp, name)
		signed, err := s.presigner.PresignPut(ctx, key, "image/png", photoExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		out = append(out, URL{FileName: name, URL: signed})
	}
	return out, nil
}

func (s *Service) videoPartURLs(ctx context.Context, fileName string, parts int) ([]URL, error) {
	baseKey := fmt.Sprintf("%s/%d-%s", videoPrefix, s.now().UnixMilli(), fileName)
	out := make([]URL, 0, parts)
	for part := 1; part <= parts; part++ {
		key := fmt.Sprintf("%s.part%d", baseKey, part)
		signed, err := s.presigner.PresignPut(ctx, key, "video/mp4", videoPartExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		out = append(out, URL{PartNumber: part, URL: signed})
	}
	return out, nil
}
