package cache

import (
	"context"
	"time"
)

// Cache is the read-through store in front of the inventory index.
// Entries are immutable once written and simply expire.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetOrSet retrieves a value or computes and stores it if missing.
	// Errors from fn are returned and nothing is stored.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// CacheError is a sentinel error type for cache lookups.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
