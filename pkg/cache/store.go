package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is a named Cache Store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Name returns the store identifier.
	Name() string

	// Match returns the entry stored under key, or ErrCacheMiss.
	Match(ctx context.Context, key CacheKey) (*CacheEntry, error)

	// Put stores entry under key, replacing any previous entry.
	Put(ctx context.Context, key CacheKey, entry *CacheEntry) error

	// Keys lists the stored keys in no particular order.
	Keys(ctx context.Context) ([]string, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
