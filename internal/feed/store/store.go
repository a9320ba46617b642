package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

type PGStore struct{ pool *pgxpool.Pool }

// Ensure PGStore implements the feed.StorePort interface.
var _ feed.StorePort = (*PGStore)(nil)

func New(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	_, err = pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS posts (
  id UUID PRIMARY KEY,
  type VARCHAR(20) CHECK (type IN ('text', 'photoAlbum', 'video')) NOT NULL,
  content TEXT NOT NULL,
  mediaurls JSONB,
  videourl VARCHAR(255),
  createdat TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_posts_createdat ON posts (createdat DESC);
`)
	if err != nil {
		return nil, err
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

// Insert writes the post and returns the generated id together with the
// store-assigned creation timestamp, in one round trip.
func (s *PGStore) Insert(ctx context.Context, in models.PostInput) (string, time.Time, error) {
	id := uuid.NewString()

	var mediaURLs any
	if in.Type == models.PostTypePhotoAlbum {
		raw, err := json.Marshal(in.MediaURLs)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("encode media urls: %w", err)
		}
		mediaURLs = raw
	}
	var videoURL any
	if in.Type == models.PostTypeVideo {
		videoURL = in.VideoURL
	}

	var createdAt time.Time
	err := s.pool.QueryRow(ctx, `
INSERT INTO posts (id, type, content, mediaurls, videourl, createdat)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING createdat`,
		id, string(in.Type), in.Content, mediaURLs, videoURL).Scan(&createdAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", feed.ErrStoreUnavailable, err)
	}
	return id, createdAt, nil
}

func (s *PGStore) GetByID(ctx context.Context, id string) (models.Post, bool, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, type, content, mediaurls, videourl, createdat
FROM posts WHERE id = $1`, id)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, false, nil
	}
	if err != nil {
		return models.Post{}, false, fmt.Errorf("%w: %w", feed.ErrStoreUnavailable, err)
	}
	return post, true, nil
}

// RangeBefore returns up to limit posts ordered by createdat descending,
// strictly older than cursor when one is given.
func (s *PGStore) RangeBefore(ctx context.Context, cursor *time.Time, limit int) ([]models.Post, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor != nil {
		rows, err = s.pool.Query(ctx, `
SELECT id, type, content, mediaurls, videourl, createdat
FROM posts
WHERE createdat < $1
ORDER BY createdat DESC
LIMIT $2`, *cursor, limit)
	} else {
		rows, err = s.pool.Query(ctx, `
SELECT id, type, content, mediaurls, videourl, createdat
FROM posts
ORDER BY createdat DESC
LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", feed.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", feed.ErrStoreUnavailable, err)
		}
		out = append(out, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", feed.ErrStoreUnavailable, err)
	}
	return out, nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var (
		p         models.Post
		typ       string
		mediaURLs []byte
		videoURL  *string
	)
	if err := row.Scan(&p.ID, &typ, &p.Content, &mediaURLs, &videoURL, &p.CreatedAt); err != nil {
		return models.Post{}, err
	}
	p.Type = models.PostType(typ)
	if len(mediaURLs) > 0 {
		if err := json.Unmarshal(mediaURLs, &p.MediaURLs); err != nil {
			return models.Post{}, fmt.Errorf("decode media urls: %w", err)
		}
	}
	if videoURL != nil {
		p.VideoURL = *videoURL
	}
	return p, nil
}
