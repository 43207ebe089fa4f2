// Package metrics provides the centralized Prometheus metrics registry for
// the football data client. All metrics are defined in their respective
// packages (cache, ratelimit, orchestrator) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - footballdata_cache_hits_total{backend} (Counter): Cache hits by backend (redis, memory)
//   - footballdata_cache_misses_total (Counter): Cache misses
//   - footballdata_cache_errors_total{operation} (Counter): Cache operation errors (get, set, delete)
//   - footballdata_cache_writes_total{category} (Counter): Cache writes by key category
//
// Rate Limit Metrics (pkg/ratelimit):
//   - footballdata_ratelimit_requests_recorded_total{provider} (Counter): Requests recorded per provider
//   - footballdata_ratelimit_blocked_total{provider} (Counter): Admission checks rejected per provider
//   - footballdata_ratelimit_in_window{provider} (Gauge): Requests in a provider's trailing window
//
// Fetch Metrics (pkg/orchestrator):
//   - footballdata_fetches_total{operation, outcome} (Counter): Fetch operations by outcome
//     (cache_hit, upstream, exhausted, error)
//   - footballdata_provider_attempts_total{provider, outcome} (Counter): Fallback attempts by
//     outcome (success, error, empty, rate_limited)
//   - footballdata_fetch_duration_seconds{operation} (Histogram): End-to-end fetch latency
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(footballdata_cache_hits_total[5m])) /
//   (sum(rate(footballdata_cache_hits_total[5m])) + sum(rate(footballdata_cache_misses_total[5m])))
//
//   # Fallback Pressure (non-primary providers serving traffic)
//   sum(rate(footballdata_provider_attempts_total{outcome="success",provider!="api-football"}[5m]))
//
//   # Exhaustion Rate
//   rate(footballdata_fetches_total{outcome="exhausted"}[5m])
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(footballdata_fetch_duration_seconds_bucket[5m]))
