package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

func mkPost(i int) models.Post {
	return models.Post{
		ID:        fmt.Sprintf("p%02d", i),
		Type:      models.PostTypeText,
		Content:   fmt.Sprintf("post %d", i),
		CreatedAt: testBase.Add(time.Duration(i) * time.Second),
	}
}

func TestAdmit_UnderCapacityKeepsAll(t *testing.T) {
	cache := newFakeCache()
	sync := NewSynchronizer(cache, 10, discardLogger())

	for i := 1; i <= 5; i++ {
		if err := sync.Admit(context.Background(), mkPost(i)); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}
	if got := cache.ids(); len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d: %v", len(got), got)
	}
	if len(cache.deletes) != 0 {
		t.Fatalf("no evictions expected under capacity, got %v", cache.deletes)
	}
}

func TestAdmit_TrimsToCapacity(t *testing.T) {
	cache := newFakeCache()
	sync := NewSynchronizer(cache, 10, discardLogger())

	for i := 1; i <= 12; i++ {
		if err := sync.Admit(context.Background(), mkPost(i)); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}

	got := cache.ids()
	want := []string{"p03", "p04", "p05", "p06", "p07", "p08", "p09", "p10", "p11", "p12"}
	if !slices.Equal(got, want) {
		t.Fatalf("retained entries mismatch:\n want %v\n got  %v", want, got)
	}
}

func TestAdmit_PutError(t *testing.T) {
	cache := newFakeCache()
	cache.putErr = errors.New("table missing")
	sync := NewSynchronizer(cache, 10, discardLogger())

	if err := sync.Admit(context.Background(), mkPost(1)); err == nil {
		t.Fatal("expected put error, got nil")
	}
}

func TestAdmit_ScanError(t *testing.T) {
	cache := newFakeCache()
	cache.scanErr = errors.New("throttled")
	sync := NewSynchronizer(cache, 10, discardLogger())

	if err := sync.Admit(context.Background(), mkPost(1)); err == nil {
		t.Fatal("expected scan error, got nil")
	}
	// the admitted entry is not rolled back
	if got := cache.ids(); !slices.Equal(got, []string{"p01"}) {
		t.Fatalf("admitted entry must survive a failed scan, got %v", got)
	}
}

func TestAdmit_EvictFailureContinuesAndReportsError(t *testing.T) {
	cache := newFakeCache()
	// prefill four old entries directly, then admit a fifth with capacity 2:
	// p01, p02 and p03 all need evicting
	for i := 1; i <= 4; i++ {
		if err := cache.Put(context.Background(), models.ToCacheEntry(mkPost(i))); err != nil {
			t.Fatal(err)
		}
	}
	cache.deleteErrFor = map[string]error{"p02": errors.New("conditional check failed")}
	sync := NewSynchronizer(cache, 2, discardLogger())

	err := sync.Admit(context.Background(), mkPost(5))
	if err == nil {
		t.Fatal("expected trim error, got nil")
	}

	// every excess entry was attempted despite the failure in the middle
	for _, id := range []string{"p01", "p02", "p03"} {
		if !slices.Contains(cache.deletes, id) {
			t.Errorf("expected delete attempt for %s, got %v", id, cache.deletes)
		}
	}
	// the failed delete leaves the cache transiently over capacity
	got := cache.ids()
	want := []string{"p02", "p04", "p05"}
	if !slices.Equal(got, want) {
		t.Fatalf("cache state after partial trim:\n want %v\n got  %v", want, got)
	}
}

func TestAdmit_DefaultCapacity(t *testing.T) {
	cache := newFakeCache()
	sync := NewSynchronizer(cache, 0, discardLogger())

	for i := 1; i <= DefaultCapacity+1; i++ {
		if err := sync.Admit(context.Background(), mkPost(i)); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}
	if got := cache.ids(); len(got) != DefaultCapacity {
		t.Fatalf("expected %d entries, got %d", DefaultCapacity, len(got))
	}
}
