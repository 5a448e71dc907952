package storage

import (
	"context"
	"sync"
)

type InMemStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{values: make(map[string]string)}
}

func (s *InMemStorage) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemStorage) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
