package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend is the durable cache backend. TTL expiry is enforced natively
// by Redis, so Get never has to check timestamps itself.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend creates a Redis-backed cache.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisBackend{client: client}
}

// Get retrieves the raw bytes stored under key.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores data under key with native Redis expiry.
func (r *RedisBackend) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the entry for key.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// IsConnected pings Redis. Diagnostics only: a failed ping means callers see
// cache misses, never errors.
func (r *RedisBackend) IsConnected(ctx context.Context) bool {
	return r.client.Ping(ctx).Err() == nil
}

// Close closes the underlying Redis client.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}
