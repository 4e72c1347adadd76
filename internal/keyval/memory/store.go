package memory

import (
	"context"
	"sync"

	"github.com/ctfarena/ctfarena/internal/keyval"
)

// Store is an in-memory implementation of the keyval store
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Ensure Store implements the interface
var _ keyval.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", keyval.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
