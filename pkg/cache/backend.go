package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidTTL indicates a non-positive TTL was passed to Set.
	ErrInvalidTTL = errors.New("ttl must be positive")
)

// Backend is the storage contract shared by all cache implementations.
// Implementations must treat expired entries as absent on Get so staleness
// is never observable to callers, regardless of how expiry is enforced.
type Backend interface {
	// Get returns the raw bytes stored under key, or ErrCacheMiss if the
	// key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key for the given TTL, overwriting any
	// existing entry and resetting its expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// IsConnected reports backend health for diagnostics. It never gates
	// correctness: an unhealthy backend behaves as a permanent cache miss.
	IsConnected(ctx context.Context) bool

	// Close releases backend resources.
	Close() error
}
