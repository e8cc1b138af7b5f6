package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	payload           []byte
	absoluteExpiresAt time.Time
	slidingWindow     time.Duration
	slidesAt          time.Time
}

func (e entry) expired(now time.Time) bool {
	if !e.absoluteExpiresAt.IsZero() && now.After(e.absoluteExpiresAt) {
		return true
	}
	if e.slidingWindow > 0 && now.After(e.slidesAt) {
		return true
	}
	return false
}

// MemoryStore is a single-process Store backed by a plain map guarded by one
// mutex. Expiration is lazy: entries are purged when a Get observes them
// expired, not by a background sweeper.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]entry{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	now := s.now()
	if e.expired(now) {
		delete(s.entries, key)
		return nil, false, nil
	}
	if e.slidingWindow > 0 {
		e.slidesAt = now.Add(e.slidingWindow)
		s.entries[key] = e
	}
	return append([]byte(nil), e.payload...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, absoluteTTL, slidingTTL time.Duration) error {
	now := s.now()
	e := entry{payload: append([]byte(nil), value...)}
	if absoluteTTL > 0 {
		e.absoluteExpiresAt = now.Add(absoluteTTL)
	}
	if slidingTTL > 0 {
		e.slidingWindow = slidingTTL
		e.slidesAt = now.Add(slidingTTL)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
