package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TabStorage is tab-scoped storage: it lives as long as the process (one
// interactive shell) and is never shared.
type TabStorage struct {
	id    uuid.UUID
	mu    sync.RWMutex
	items map[string]string
}

func NewTabStorage() *TabStorage {
	return &TabStorage{
		id:    uuid.New(),
		items: make(map[string]string),
	}
}

func (s *TabStorage) ID() uuid.UUID {
	return s.id
}

func (s *TabStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *TabStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *TabStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *TabStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
