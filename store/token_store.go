package store

import (
	"context"

	"github.com/goliatone/go-auth-client/core"
)

// KeyedStore is a TokenStore that keeps the session token under a fixed key
// in a SecureStore. Backend failures surface as storage errors; a missing
// token reads back as the empty string.
type KeyedStore struct {
	backend core.SecureStore
	key     string
}

func NewKeyedStore(backend core.SecureStore, key string) (*KeyedStore, error) {
	if backend == nil {
		return nil, storageError("token store: secure store backend is required", nil)
	}
	if key == "" {
		return nil, storageError("token store: storage key is required", nil)
	}
	return &KeyedStore{backend: backend, key: key}, nil
}

func (s *KeyedStore) Store(ctx context.Context, token string) error {
	if token == "" {
		return storageError("token store: refusing to store empty token", map[string]any{
			"storage_key": s.key,
		})
	}
	if err := s.backend.Set(ctx, s.key, token); err != nil {
		return storageWrapError(err, "token store: write failed", map[string]any{
			"storage_key": s.key,
		})
	}
	return nil
}

func (s *KeyedStore) Retrieve(ctx context.Context) (string, error) {
	value, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return "", storageWrapError(err, "token store: read failed", map[string]any{
			"storage_key": s.key,
		})
	}
	if !found {
		return "", nil
	}
	return value, nil
}

func (s *KeyedStore) Delete(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return storageWrapError(err, "token store: delete failed", map[string]any{
			"storage_key": s.key,
		})
	}
	return nil
}

var _ core.TokenStore = (*KeyedStore)(nil)
