package feed

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

func assertStrictlyDescending(t *testing.T, posts []models.Post) {
	t.Helper()
	for i := 1; i < len(posts); i++ {
		if !posts[i].CreatedAt.Before(posts[i-1].CreatedAt) {
			t.Fatalf("page not strictly descending at %d: %s then %s",
				i, posts[i-1].CreatedAt, posts[i].CreatedAt)
		}
	}
}

// seed inserts n posts into the store and admits each into the cache.
func seed(t *testing.T, store *fakeStore, cache *fakeCache, capacity, n int) {
	t.Helper()
	svc := newService(store, cache, capacity)
	for i := 1; i <= n; i++ {
		if _, err := svc.Create(context.Background(), models.PostInput{
			Type:    models.PostTypeText,
			Content: "c",
		}); err != nil {
			t.Fatalf("seed create %d: %v", i, err)
		}
	}
}

func TestPage_ServedFromCacheWhenFull(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 10, 12)
	reader := NewReader(store, cache, discardLogger())

	// make the store error to prove the cache hit never touches it
	store.rangeErr = errors.New("store must not be queried")

	page, err := reader.Page(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("expected 10 posts, got %d", len(page))
	}
	assertStrictlyDescending(t, page)
	if page[0].ID != "p12" || page[9].ID != "p03" {
		t.Fatalf("expected p12..p03, got %s..%s", page[0].ID, page[9].ID)
	}
}

func TestPage_FallsBackWhenCacheShort(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	// 5 cached entries, but the store holds 15 rows
	seed(t, store, cache, 5, 15)
	reader := NewReader(store, cache, discardLogger())

	page, err := reader.Page(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("short cache must fall back to the store for a full page, got %d rows", len(page))
	}
	assertStrictlyDescending(t, page)
}

func TestPage_CursorBypassesCache(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 10, 12)
	reader := NewReader(store, cache, discardLogger())

	// even a failing cache is irrelevant on cursor reads
	cache.scanErr = errors.New("cache must not be scanned")

	cursor := testBase.Add(6 * time.Second) // createdAt of p06
	page, err := reader.Page(context.Background(), &cursor, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 5 {
		t.Fatalf("expected 5 posts older than cursor, got %d", len(page))
	}
	assertStrictlyDescending(t, page)
	if page[0].ID != "p05" || page[4].ID != "p01" {
		t.Fatalf("expected p05..p01, got %s..%s", page[0].ID, page[4].ID)
	}
}

func TestPage_CursorAtOldestReturnsEmpty(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 10, 5)
	reader := NewReader(store, cache, discardLogger())

	oldest := testBase.Add(1 * time.Second)
	page, err := reader.Page(context.Background(), &oldest, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(page))
	}
}

func TestPage_Idempotent(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 10, 12)
	reader := NewReader(store, cache, discardLogger())

	a, err := reader.Page(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := reader.Page(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated first-page reads differ:\n a=%+v\n b=%+v", a, b)
	}
}

func TestPage_CacheErrorFallsBackToStore(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 10, 12)
	cache.scanErr = errors.New("cache down")
	reader := NewReader(store, cache, discardLogger())

	page, err := reader.Page(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("cache failure on read must fall back, got %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("expected 10 posts from the store, got %d", len(page))
	}
	assertStrictlyDescending(t, page)
}

func TestPage_StoreErrorPropagates(t *testing.T) {
	store := &fakeStore{rangeErr: errors.New("db down")}
	reader := NewReader(store, newFakeCache(), discardLogger())

	cursor := testBase
	if _, err := reader.Page(context.Background(), &cursor, 10); err == nil {
		t.Fatal("expected store error, got nil")
	}
}

func TestPage_DefaultLimit(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	seed(t, store, cache, 12, 12)
	reader := NewReader(store, cache, discardLogger())

	page, err := reader.Page(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != DefaultPageSize {
		t.Fatalf("expected default page size %d, got %d", DefaultPageSize, len(page))
	}
}
