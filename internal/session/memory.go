package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lox/skyra/internal/metrics"
)

type conversation struct {
	entries  []Entry
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory Store.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*conversation

	// retention configuration
	maxEntries int           // max entries kept per session
	idleTTL    time.Duration // sessions idle longer than this are dropped

	now func() time.Time
}

// NewMemoryStore creates a MemoryStore. A maxEntries or idleTTL <= 0 is
// treated as unlimited.
func NewMemoryStore(maxEntries int, idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*conversation),
		maxEntries: maxEntries,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) expired(c *conversation, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(c.lastSeen) > s.idleTTL
}

// Get returns a copy of the history for id.
func (s *MemoryStore) Get(_ context.Context, id string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[id]
	if !ok || s.expired(c, s.now()) {
		return nil, nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// Append adds entries to id's history, dropping the oldest beyond the cap.
func (s *MemoryStore) Append(_ context.Context, id string, entries ...Entry) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[id]
	if !ok || s.expired(c, now) {
		c = &conversation{}
		s.data[id] = c
	}
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		c.entries = append(c.entries, e)
	}
	c.lastSeen = now

	if s.maxEntries > 0 && len(c.entries) > s.maxEntries {
		over := len(c.entries) - s.maxEntries
		c.entries = append([]Entry(nil), c.entries[over:]...)
	}

	metrics.ChatSessions.Set(float64(len(s.data)))
	return nil
}

// Sweep drops idle sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.data {
		if s.expired(c, now) {
			delete(s.data, id)
			removed++
		}
	}
	metrics.ChatSessions.Set(float64(len(s.data)))
	return removed
}

// Len returns the number of tracked sessions, including idle ones not yet
// swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) CountSessions(context.Context) (int, error) {
	return s.Len(), nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("session: swept %d idle sessions", n)
			}
		}
	}
}
