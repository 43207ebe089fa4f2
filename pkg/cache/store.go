package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/logging"
)

// Store is the fail-soft cache surface the rest of the system talks to.
// Every backend error is absorbed and logged: a broken cache degrades to
// "always miss", it never becomes an availability hazard for callers.
type Store struct {
	backend Backend
	name    string
	logger  zerolog.Logger
}

// NewStore wraps a backend. The name tags log lines and metrics ("redis",
// "memory").
func NewStore(backend Backend, name string) *Store {
	return &Store{
		backend: backend,
		name:    name,
		logger:  logging.NewLogger("cache").With().Str("backend", name).Logger(),
	}
}

// NewStoreFromEnv selects the backend by configuration presence: a reachable
// Redis at redisURL wins, otherwise the in-memory fallback (with its sweep
// started). The returned stop function releases whichever backend was chosen.
func NewStoreFromEnv(ctx context.Context, redisURL string) (*Store, func()) {
	logger := logging.NewLogger("cache")

	if redisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: redisURL})
		if err := client.Ping(ctx).Err(); err == nil {
			backend := NewRedisBackend(client)
			logger.Info().Str("addr", redisURL).Msg("Using Redis cache backend")
			return NewStore(backend, "redis"), func() { _ = backend.Close() }
		}
		_ = client.Close()
		logger.Warn().Str("addr", redisURL).Msg("Redis unreachable, falling back to in-memory cache")
	} else {
		logger.Info().Msg("No Redis URL configured, using in-memory cache")
	}

	backend := NewMemoryBackend()
	backend.Start()
	return NewStore(backend, "memory"), func() { _ = backend.Close() }
}

// Get looks up key and unmarshals the stored JSON into dest. Returns false on
// miss, expiry, or any backend/decode error.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if err == ErrCacheMiss {
			CacheMisses.Inc()
			return false
		}
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Cache get error, treating as miss")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Corrupted entry: drop it so the next write starts clean.
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Corrupted cache entry, deleting")
		_ = s.backend.Delete(ctx, key)
		return false
	}

	CacheHits.WithLabelValues(s.name).Inc()
	s.logger.Debug().Str("cache_key", key).Msg("Cache hit")
	return true
}

// Set serializes value to JSON and stores it for ttl. Errors are logged and
// swallowed.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Cache marshal error, skipping write")
		return
	}

	if err := s.backend.Set(ctx, key, data, ttl); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Cache set error, skipping write")
		return
	}

	CacheWrites.WithLabelValues(keyCategory(key)).Inc()
	s.logger.Debug().Str("cache_key", key).Dur("ttl", ttl).Msg("Cached value")
}

// Delete removes the entry for key. Errors are logged and swallowed.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Cache delete error")
		return
	}
	s.logger.Debug().Str("cache_key", key).Msg("Deleted cache entry")
}

// IsConnected reports backend health for diagnostics.
func (s *Store) IsConnected(ctx context.Context) bool {
	return s.backend.IsConnected(ctx)
}

// BackendName returns the configured backend name ("redis" or "memory").
func (s *Store) BackendName() string {
	return s.name
}

// keyCategory extracts the leading key segment for the write metric.
func keyCategory(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
