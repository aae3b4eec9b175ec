package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/learntube/internal/store"
)

var _ store.MultiSetter = (*Store)(nil)

// Store keeps values in process memory. Used when Redis is disabled and in tests.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty memory store
func New() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

// SetMany stores every value under one lock
func (s *Store) SetMany(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = append([]byte(nil), value...)
	}
	return nil
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }
