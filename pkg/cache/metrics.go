package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend ("redis" or "memory")
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footballdata_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "footballdata_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheErrors tracks absorbed cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footballdata_cache_errors_total",
			Help: "Total number of cache operation errors (absorbed, treated as miss)",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)

	// CacheWrites tracks successful cache writes by category key prefix
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footballdata_cache_writes_total",
			Help: "Total number of cache writes by key category",
		},
		[]string{"category"},
	)
)
