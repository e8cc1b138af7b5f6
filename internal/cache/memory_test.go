package cache

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

func newClockedStore(start time.Time) (*MemoryStore, *time.Time) {
	s := NewMemoryStore()
	now := start
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStoreGetSetInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "k", []byte("v1"), time.Minute, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("unexpected payload %q", got)
	}

	if err := s.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected miss after invalidate")
	}
	if err := s.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("invalidating absent key: %v", err)
	}
}

func TestMemoryStoreAbsoluteExpiration(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, now := newClockedStore(start)

	if err := s.Set(ctx, "k", []byte("v"), 5*time.Minute, 2*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Keep hitting inside the sliding window; the absolute deadline still
	// wins regardless of intervening hits.
	for i := 0; i < 5; i++ {
		*now = (*now).Add(time.Minute)
		if i < 4 {
			if _, found, _ := s.Get(ctx, "k"); !found {
				t.Fatalf("expected hit at minute %d", i+1)
			}
		}
	}
	*now = start.Add(5*time.Minute + time.Second)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected miss after absolute TTL despite sliding hits")
	}
}

func TestMemoryStoreSlidingExpiration(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, now := newClockedStore(start)

	if err := s.Set(ctx, "k", []byte("v"), time.Hour, 2*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A hit inside the window extends it.
	*now = start.Add(90 * time.Second)
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatal("expected hit inside sliding window")
	}
	*now = start.Add(3 * time.Minute)
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatal("expected hit, previous access extended the window")
	}

	// Let the window lapse without access.
	*now = start.Add(3*time.Minute + 2*time.Minute + time.Second)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected miss after sliding window lapsed")
	}
}

func TestMemoryStoreExpiredEntryIsMissBeforePurge(t *testing.T) {
	ctx := context.Background()
	s, now := newClockedStore(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	if err := s.Set(ctx, "k", []byte("v"), time.Minute, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	*now = (*now).Add(2 * time.Minute)

	// The entry is still physically present until Get observes it expired.
	s.mu.Lock()
	_, present := s.entries["k"]
	s.mu.Unlock()
	if !present {
		t.Fatal("expected entry to still be present before lazy purge")
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("expected expired entry to read as a miss")
	}
	s.mu.Lock()
	_, present = s.entries["k"]
	s.mu.Unlock()
	if present {
		t.Fatal("expected entry purged after the miss")
	}
}

func TestMemoryStoreSetResetsTimers(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, now := newClockedStore(start)

	if err := s.Set(ctx, "k", []byte("v1"), time.Minute, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	*now = start.Add(50 * time.Second)
	if err := s.Set(ctx, "k", []byte("v2"), time.Minute, 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	// Past the first deadline but inside the reset one.
	*now = start.Add(90 * time.Second)
	got, found, _ := s.Get(ctx, "k")
	if !found || !bytes.Equal(got, []byte("v2")) {
		t.Fatalf("expected v2 within reset TTL, got found=%v payload=%q", found, got)
	}
}

// Two callers racing on the same miss both write the cache; the last write
// wins. The store serializes the writes but does not coordinate them.
func TestMemoryStoreRacingMissLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for _, v := range []string{"first", "second"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_ = s.Set(ctx, "k", []byte(v), time.Minute, 0)
		}(v)
	}
	wg.Wait()

	got, found, _ := s.Get(ctx, "k")
	if !found {
		t.Fatal("expected a winner to be cached")
	}
	if string(got) != "first" && string(got) != "second" {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Set(ctx, "k", []byte("abc"), time.Minute, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, _ := s.Get(ctx, "k")
	got[0] = 'x'
	again, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatal("cached payload must not be mutable through Get results")
	}
}
