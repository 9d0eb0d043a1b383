package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-auth-client/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const tokenCacheKeyPrefix = "go-auth-client::secure_store::v1"

type cachedToken struct {
	Value string
	Found bool
}

// CachedSecureStore fronts a SecureStore with a read-through cache. Writes
// and deletes go to the base store first and then invalidate the cache entry,
// so a read after a mutation always refetches.
type CachedSecureStore struct {
	base  core.SecureStore
	cache repositorycache.CacheService
}

func NewCachedSecureStore(base core.SecureStore, cacheService repositorycache.CacheService) (*CachedSecureStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base secure store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: cache service is required")
	}
	return &CachedSecureStore{base: base, cache: cacheService}, nil
}

// TokenCacheKey returns the deterministic cache key for a storage key:
// go-auth-client::secure_store::v1::<storage_key> with the key URL-path
// escaped.
func TokenCacheKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: storage key is required")
	}
	return tokenCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedSecureStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached secure store is not configured")
	}
	cacheKey, err := TokenCacheKey(key)
	if err != nil {
		return err
	}
	if err := s.base.Set(ctx, key, value); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func (s *CachedSecureStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return "", false, fmt.Errorf("sqlstore: cached secure store is not configured")
	}
	cacheKey, err := TokenCacheKey(key)
	if err != nil {
		return "", false, err
	}
	cached, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedToken, error) {
		value, found, fetchErr := s.base.Get(ctx, key)
		if fetchErr != nil {
			return cachedToken{}, fetchErr
		}
		return cachedToken{Value: value, Found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	return cached.Value, cached.Found, nil
}

func (s *CachedSecureStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached secure store is not configured")
	}
	cacheKey, err := TokenCacheKey(key)
	if err != nil {
		return err
	}
	if err := s.base.Delete(ctx, key); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ core.SecureStore = (*CachedSecureStore)(nil)
