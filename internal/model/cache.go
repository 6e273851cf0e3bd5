package model

import (
	"context"
	"time"
)

// Cache is the response cache for book listings. Implementations return
// ErrCacheMiss for absent keys; every other error means the cache backend
// is misbehaving and callers should fall through to the store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate removes every key matching the glob pattern.
	Invalidate(ctx context.Context, pattern string) error
}
