// Package ratelimit implements per-provider sliding-window request
// self-throttling. The limiter is local and best-effort: fallback ordering
// already minimizes upstream calls, so the goal is to stay inside each
// provider's per-minute budget, not to enforce a distributed quota.
package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/logging"
)

// Window is the trailing interval that request timestamps count toward.
const Window = 60 * time.Second

// Prometheus metrics for rate limit decisions.
var (
	requestsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footballdata_ratelimit_requests_recorded_total",
		Help: "Total requests recorded against a provider's rate window",
	}, []string{"provider"})

	requestsBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footballdata_ratelimit_blocked_total",
		Help: "Total admission checks rejected because the window was full",
	}, []string{"provider"})

	requestsInWindow = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "footballdata_ratelimit_in_window",
		Help: "Requests currently counted in a provider's trailing window",
	}, []string{"provider"})
)

// Limiter tracks request timestamps per provider in a trailing 60-second
// window. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	logger  zerolog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewLimiter creates an empty limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string][]time.Time),
		logger:  logging.NewLogger("ratelimit"),
		now:     time.Now,
	}
}

// CanMakeRequest reports whether the provider has budget left: the number of
// recorded timestamps inside the trailing window must be below limit. Pruning
// happens on every check so per-provider state stays bounded by recent
// traffic.
func (l *Limiter) CanMakeRequest(provider string, limit int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	inWindow := l.pruneLocked(provider)
	requestsInWindow.WithLabelValues(provider).Set(float64(inWindow))

	if inWindow >= limit {
		requestsBlocked.WithLabelValues(provider).Inc()
		l.logger.Warn().
			Str("provider", provider).
			Int("in_window", inWindow).
			Int("limit", limit).
			Msg("Provider rate limited")
		return false
	}

	return true
}

// RecordRequest appends the current instant to the provider's window. Callers
// record immediately before issuing the request so a slow or failing call
// still counts toward the budget.
func (l *Limiter) RecordRequest(provider string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.windows[provider] = append(l.windows[provider], l.now())
	l.pruneLocked(provider)

	requestsRecorded.WithLabelValues(provider).Inc()
	requestsInWindow.WithLabelValues(provider).Set(float64(len(l.windows[provider])))
}

// InWindow returns the current count of requests inside the provider's
// trailing window. Diagnostics only.
func (l *Limiter) InWindow(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(provider)
}

// Reset clears all recorded state. Test helper.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string][]time.Time)
}

// pruneLocked drops timestamps older than the window and returns the
// remaining count. Caller must hold l.mu.
func (l *Limiter) pruneLocked(provider string) int {
	cutoff := l.now().Add(-Window)
	stamps := l.windows[provider]

	// Timestamps are appended in order; find the first one still inside
	// the window.
	keep := 0
	for keep < len(stamps) && !stamps[keep].After(cutoff) {
		keep++
	}

	if keep > 0 {
		stamps = append(stamps[:0:0], stamps[keep:]...)
		if len(stamps) == 0 {
			delete(l.windows, provider)
		} else {
			l.windows[provider] = stamps
		}
	}

	return len(stamps)
}
