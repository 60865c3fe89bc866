package audit

import (
	"context"
	"sync"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// MemoryStore keeps events in process memory, grouped by origin.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]Event)}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Origin] = append(s.events[event.Origin], event)
	return nil
}

func (s *MemoryStore) ListByOrigin(_ context.Context, origin string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[origin]...), nil
}
