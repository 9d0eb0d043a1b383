// Package store provides token persistence backends and the observable
// decorator that publishes token change events.
package store

import (
	"context"
	"sync"

	"github.com/goliatone/go-auth-client/core"
)

// MemoryStore is an in-process SecureStore. It is safe for concurrent use
// and is the default backend when no durable store is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return storageError("secure store: key is required", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, storageError("secure store: key is required", nil)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return storageError("secure store: key is required", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

var _ core.SecureStore = (*MemoryStore)(nil)
