// Package cache provides the caching layer for fixture, odds, and prediction
// data: a backend-agnostic key-value contract with per-entry expiry, a
// fail-soft store wrapper, and a category-aware manager.
//
// # Backends
//
// Two interchangeable backends implement the Backend interface: RedisBackend
// (durable, native TTL expiry) and MemoryBackend (in-process fallback with
// lazy expiry plus a periodic sweep). Selection happens at construction time
// based on configuration presence:
//
//	store, stop := cache.NewStoreFromEnv(ctx, os.Getenv("REDIS_URL"))
//	defer stop()
//
// # Fail-soft semantics
//
// Caching is strictly a performance optimization. The Store absorbs every
// backend error, logs it, and reports a miss (on Get) or a no-op (on Set),
// so a broken cache can slow the system down but never take it down.
//
// # Categories
//
// The Manager assigns canonical keys and category TTLs:
//
//	manager := cache.NewManager(store, cache.DefaultTTLConfig())
//	if fixtures, ok := manager.GetFixtures(ctx, "2024-01-15"); ok {
//		// cache hit
//	}
//
// Key formats are stable and documented in keys.go; external tooling builds
// them directly to inspect or invalidate entries.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - footballdata_cache_hits_total{backend} - cache hits
//   - footballdata_cache_misses_total - cache misses
//   - footballdata_cache_errors_total{operation} - absorbed backend errors
//   - footballdata_cache_writes_total{category} - writes by key category
package cache
