// Package orchestrator implements cache-first, priority-ordered fixture
// acquisition across multiple upstream providers.
//
// Every read follows the same shape: consult the cache, and on a miss walk the
// provider registry in priority order, skipping providers that lack the
// capability or have no budget left in their rate window. The first provider
// that returns data wins and its result is cached; a provider that errors or
// returns an empty result is recorded and the walk continues. Only when every
// candidate has been tried does the caller see an error, and that error names
// each provider's reason.
//
// Odds are the exception to the fallback walk: a fixture id is only meaningful
// to the provider that issued it, so odds come from that provider or not at
// all.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/matchpulse/football-data-client/pkg/cache"
	"github.com/matchpulse/football-data-client/pkg/feed"
	"github.com/matchpulse/football-data-client/pkg/logging"
	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/provider"
	"github.com/matchpulse/football-data-client/pkg/ratelimit"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// Prometheus metrics for fetch outcomes.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footballdata_fetches_total",
		Help: "Total fetch operations by outcome (cache_hit, upstream, exhausted, error)",
	}, []string{"operation", "outcome"})

	providerAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footballdata_provider_attempts_total",
		Help: "Per-provider fallback attempts by outcome (success, error, empty, rate_limited)",
	}, []string{"provider", "outcome"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "footballdata_fetch_duration_seconds",
		Help:    "End-to-end fetch latency including fallback",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// Config assembles an Orchestrator. Cache and Sources are required; Registry
// and Limiter default to the stock setup when nil.
type Config struct {
	Cache    *cache.Manager
	Registry *provider.Registry
	Limiter  *ratelimit.Limiter
	Sources  []feed.Source

	// DisableSingleFlight turns off in-process deduplication of concurrent
	// identical fetches.
	DisableSingleFlight bool
}

// Orchestrator is the explicit dependency bundle behind all fetch operations.
// Construct once, share freely; all methods are safe for concurrent use.
type Orchestrator struct {
	cache    *cache.Manager
	registry *provider.Registry
	limiter  *ratelimit.Limiter
	sources  map[string]feed.Source
	logger   zerolog.Logger

	flight    singleflight.Group
	useFlight bool
}

// New creates an orchestrator from the config.
func New(cfg Config) *Orchestrator {
	registry := cfg.Registry
	if registry == nil {
		registry = provider.DefaultRegistry()
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter()
	}

	sources := make(map[string]feed.Source, len(cfg.Sources))
	for _, src := range cfg.Sources {
		sources[src.Name()] = src
	}

	return &Orchestrator{
		cache:     cfg.Cache,
		registry:  registry,
		limiter:   limiter,
		sources:   sources,
		logger:    logging.NewLogger("orchestrator"),
		useFlight: !cfg.DisableSingleFlight,
	}
}

// FixturesResult is the answer to a fixtures or live-scores request.
type FixturesResult struct {
	Fixtures []unified.Fixture `json:"fixtures"`
	Provider string            `json:"provider"`
	Cached   bool              `json:"cached"`
}

// OddsResult is the answer to an odds request.
type OddsResult struct {
	Odds     *odds.ProcessedOdds `json:"odds"`
	Provider string              `json:"provider"`
	Cached   bool                `json:"cached"`
}

// FetchFixtures returns fixtures for a YYYY-MM-DD date, cache-first with
// provider fallback on miss.
func (o *Orchestrator) FetchFixtures(ctx context.Context, date string) (*FixturesResult, error) {
	timer := prometheus.NewTimer(fetchDuration.WithLabelValues("fixtures"))
	defer timer.ObserveDuration()

	if fixtures, ok := o.cache.GetFixtures(ctx, date); ok {
		fetchesTotal.WithLabelValues("fixtures", "cache_hit").Inc()
		return &FixturesResult{Fixtures: fixtures, Provider: resultProvider(fixtures), Cached: true}, nil
	}

	return o.deduped(cache.FixturesKey(date), func() (*FixturesResult, error) {
		// A concurrent fetch may have filled the cache while this call
		// waited its turn.
		if fixtures, ok := o.cache.GetFixtures(ctx, date); ok {
			fetchesTotal.WithLabelValues("fixtures", "cache_hit").Inc()
			return &FixturesResult{Fixtures: fixtures, Provider: resultProvider(fixtures), Cached: true}, nil
		}
		return o.fetchFixturesUpstream(ctx, date)
	})
}

func (o *Orchestrator) fetchFixturesUpstream(ctx context.Context, date string) (*FixturesResult, error) {
	var failures []ProviderFailure

	for _, d := range o.registry.CandidatesFor(provider.CapFixtures) {
		src, skip := o.admit(d, &failures)
		if skip {
			continue
		}

		fixtures, err := src.FetchFixtures(ctx, date)
		if err != nil {
			failures = o.recordFailure(failures, d.Name, err)
			continue
		}
		if len(fixtures) == 0 {
			failures = o.recordEmpty(failures, d.Name)
			continue
		}

		providerAttempts.WithLabelValues(d.Name, "success").Inc()
		fetchesTotal.WithLabelValues("fixtures", "upstream").Inc()

		o.cache.SetFixtures(ctx, date, fixtures)
		o.cache.SetProviderFixtures(ctx, date, d.Name, fixtures)

		o.logger.Info().
			Str("provider", d.Name).
			Str("date", date).
			Int("fixtures", len(fixtures)).
			Msg("Fixtures fetched")

		return &FixturesResult{Fixtures: fixtures, Provider: d.Name, Cached: false}, nil
	}

	fetchesTotal.WithLabelValues("fixtures", "exhausted").Inc()
	return nil, &ExhaustionError{Operation: "fixtures", Subject: date, Failures: failures}
}

// FetchLiveScores returns in-play fixtures for a date. Same fallback contract
// as FetchFixtures, restricted to live-capable providers, with the short live
// TTL.
func (o *Orchestrator) FetchLiveScores(ctx context.Context, date string) (*FixturesResult, error) {
	timer := prometheus.NewTimer(fetchDuration.WithLabelValues("live_scores"))
	defer timer.ObserveDuration()

	if fixtures, ok := o.cache.GetLiveScores(ctx, date); ok {
		fetchesTotal.WithLabelValues("live_scores", "cache_hit").Inc()
		return &FixturesResult{Fixtures: fixtures, Provider: resultProvider(fixtures), Cached: true}, nil
	}

	return o.deduped(cache.LiveScoresKey(date), func() (*FixturesResult, error) {
		if fixtures, ok := o.cache.GetLiveScores(ctx, date); ok {
			fetchesTotal.WithLabelValues("live_scores", "cache_hit").Inc()
			return &FixturesResult{Fixtures: fixtures, Provider: resultProvider(fixtures), Cached: true}, nil
		}
		return o.fetchLiveScoresUpstream(ctx, date)
	})
}

func (o *Orchestrator) fetchLiveScoresUpstream(ctx context.Context, date string) (*FixturesResult, error) {
	var failures []ProviderFailure

	for _, d := range o.registry.CandidatesFor(provider.CapLiveScores) {
		src, skip := o.admit(d, &failures)
		if skip {
			continue
		}

		liveSrc, ok := src.(feed.LiveScoreSource)
		if !ok {
			failures = append(failures, ProviderFailure{Provider: d.Name, Reason: "live scores not supported"})
			continue
		}

		fixtures, err := liveSrc.FetchLiveScores(ctx, date)
		if err != nil {
			failures = o.recordFailure(failures, d.Name, err)
			continue
		}
		if len(fixtures) == 0 {
			failures = o.recordEmpty(failures, d.Name)
			continue
		}

		providerAttempts.WithLabelValues(d.Name, "success").Inc()
		fetchesTotal.WithLabelValues("live_scores", "upstream").Inc()

		o.cache.SetLiveScores(ctx, date, fixtures)

		return &FixturesResult{Fixtures: fixtures, Provider: d.Name, Cached: false}, nil
	}

	fetchesTotal.WithLabelValues("live_scores", "exhausted").Inc()
	return nil, &ExhaustionError{Operation: "live_scores", Subject: date, Failures: failures}
}

// FetchOdds returns processed best-price odds for one fixture, cache-first.
// The unified fixture id names its owning provider in the prefix, and only
// that provider is ever queried: fixture ids are opaque per provider, so the
// same numeric id in another provider's space is an unrelated match. There is
// no cross-provider fallback for odds.
func (o *Orchestrator) FetchOdds(ctx context.Context, fixtureID string) (*OddsResult, error) {
	timer := prometheus.NewTimer(fetchDuration.WithLabelValues("odds"))
	defer timer.ObserveDuration()

	if processed, ok := o.cache.GetOdds(ctx, fixtureID); ok {
		fetchesTotal.WithLabelValues("odds", "cache_hit").Inc()
		return &OddsResult{Odds: processed, Cached: true}, nil
	}

	do := func() (*OddsResult, error) {
		if processed, ok := o.cache.GetOdds(ctx, fixtureID); ok {
			fetchesTotal.WithLabelValues("odds", "cache_hit").Inc()
			return &OddsResult{Odds: processed, Cached: true}, nil
		}
		return o.fetchOddsUpstream(ctx, fixtureID)
	}

	if !o.useFlight {
		return do()
	}

	v, err, _ := o.flight.Do(cache.OddsKey(fixtureID), func() (interface{}, error) {
		return do()
	})
	if err != nil {
		return nil, err
	}
	return cloneOddsResult(v.(*OddsResult)), nil
}

func (o *Orchestrator) fetchOddsUpstream(ctx context.Context, fixtureID string) (*OddsResult, error) {
	d, originalID, ok := o.splitFixtureID(fixtureID)
	if !ok {
		fetchesTotal.WithLabelValues("odds", "error").Inc()
		return nil, fmt.Errorf("fixture id %q: %w", fixtureID, ErrUnknown)
	}

	fail := func(err error) (*OddsResult, error) {
		fetchesTotal.WithLabelValues("odds", "error").Inc()
		return nil, &ProviderError{Provider: d.Name, Err: err}
	}

	if !d.Capabilities.Has(provider.CapOdds) {
		return fail(ErrOddsUnsupported)
	}
	src, ok := o.sources[d.Name]
	if !ok {
		return fail(ErrNotConfigured)
	}
	oddsSrc, ok := src.(feed.OddsSource)
	if !ok {
		return fail(ErrOddsUnsupported)
	}
	if !o.limiter.CanMakeRequest(d.Name, d.RateLimit) {
		providerAttempts.WithLabelValues(d.Name, "rate_limited").Inc()
		return fail(ErrRateLimited)
	}

	o.limiter.RecordRequest(d.Name)
	quotes, err := oddsSrc.FetchOdds(ctx, originalID)
	if err != nil {
		providerAttempts.WithLabelValues(d.Name, "error").Inc()
		o.logger.Warn().Err(err).Str("provider", d.Name).Str("fixture", fixtureID).Msg("Odds fetch failed")
		return fail(err)
	}
	if len(quotes) == 0 {
		providerAttempts.WithLabelValues(d.Name, "empty").Inc()
		return fail(ErrNoData)
	}

	providerAttempts.WithLabelValues(d.Name, "success").Inc()
	fetchesTotal.WithLabelValues("odds", "upstream").Inc()

	processed := odds.BestOdds(quotes)
	o.cache.SetOdds(ctx, fixtureID, &processed)

	o.logger.Info().
		Str("provider", d.Name).
		Str("fixture", fixtureID).
		Int("quotes", len(quotes)).
		Msg("Odds fetched")

	return &OddsResult{Odds: &processed, Provider: d.Name, Cached: false}, nil
}

// splitFixtureID resolves the owning provider and the provider-space id from
// a unified fixture id. Provider names themselves contain dashes, so the
// prefix is matched against the registry instead of split at a dash.
func (o *Orchestrator) splitFixtureID(fixtureID string) (provider.Descriptor, string, bool) {
	for _, d := range o.registry.All() {
		prefix := d.Name + "-"
		if strings.HasPrefix(fixtureID, prefix) && len(fixtureID) > len(prefix) {
			return d, fixtureID[len(prefix):], true
		}
	}
	return provider.Descriptor{}, "", false
}

// admit runs the shared pre-call checks for one candidate: a configured source
// must exist and the provider must have rate budget left. On rejection the
// reason is appended to failures and skip is true.
func (o *Orchestrator) admit(d provider.Descriptor, failures *[]ProviderFailure) (feed.Source, bool) {
	src, ok := o.sources[d.Name]
	if !ok {
		*failures = append(*failures, ProviderFailure{Provider: d.Name, Reason: "not configured"})
		return nil, true
	}

	if !o.limiter.CanMakeRequest(d.Name, d.RateLimit) {
		providerAttempts.WithLabelValues(d.Name, "rate_limited").Inc()
		*failures = append(*failures, ProviderFailure{Provider: d.Name, Reason: "rate limited"})
		return nil, true
	}

	// Record before issuing so a hung or failed call still burns budget.
	o.limiter.RecordRequest(d.Name)
	return src, false
}

func (o *Orchestrator) recordFailure(failures []ProviderFailure, name string, err error) []ProviderFailure {
	providerAttempts.WithLabelValues(name, "error").Inc()
	o.logger.Warn().Err(err).Str("provider", name).Msg("Provider fetch failed, trying next")
	return append(failures, ProviderFailure{Provider: name, Reason: err.Error()})
}

func (o *Orchestrator) recordEmpty(failures []ProviderFailure, name string) []ProviderFailure {
	providerAttempts.WithLabelValues(name, "empty").Inc()
	o.logger.Debug().Str("provider", name).Msg("Provider returned no data, trying next")
	return append(failures, ProviderFailure{Provider: name, Reason: "no data"})
}

// deduped collapses concurrent identical fixture fetches into one upstream
// call when single-flight is enabled.
func (o *Orchestrator) deduped(key string, fn func() (*FixturesResult, error)) (*FixturesResult, error) {
	if !o.useFlight {
		return fn()
	}

	v, err, _ := o.flight.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return cloneFixturesResult(v.(*FixturesResult)), nil
}

// cloneFixturesResult gives each single-flight waiter its own result so one
// caller's mutation cannot leak into another's.
func cloneFixturesResult(r *FixturesResult) *FixturesResult {
	out := *r
	out.Fixtures = append([]unified.Fixture(nil), r.Fixtures...)
	return &out
}

func cloneOddsResult(r *OddsResult) *OddsResult {
	out := *r
	if r.Odds != nil {
		processed := *r.Odds
		out.Odds = &processed
	}
	return &out
}

// FetchTeamLogos resolves logo URLs for a set of team ids, cache-first with
// a long TTL. Logos are decoration: the result may be partial or empty and
// there is no error to handle.
func (o *Orchestrator) FetchTeamLogos(ctx context.Context, teamIDs []string) map[string]string {
	if len(teamIDs) == 0 {
		return map[string]string{}
	}

	if logos, ok := o.cache.GetTeamLogos(ctx, teamIDs); ok {
		return logos
	}

	for _, d := range o.registry.CandidatesFor(provider.CapTeams) {
		src, ok := o.sources[d.Name]
		if !ok {
			continue
		}
		logoSrc, ok := src.(feed.LogoSource)
		if !ok {
			continue
		}
		if !o.limiter.CanMakeRequest(d.Name, d.RateLimit) {
			continue
		}

		// One upstream call per team id.
		for range teamIDs {
			o.limiter.RecordRequest(d.Name)
		}

		logos := feed.FetchLogos(ctx, logoSrc, teamIDs, feed.DefaultLogoFetchConfig())
		if len(logos) == 0 {
			continue
		}

		o.cache.SetTeamLogos(ctx, teamIDs, logos)
		return logos
	}

	return map[string]string{}
}

// FetchProviderFixtures fetches a date's fixtures from one named provider,
// bypassing fallback. Results live under the provider-scoped cache key so they
// never shadow the aggregate entry.
func (o *Orchestrator) FetchProviderFixtures(ctx context.Context, date, name string) (*FixturesResult, error) {
	if fixtures, ok := o.cache.GetProviderFixtures(ctx, date, name); ok {
		return &FixturesResult{Fixtures: fixtures, Provider: name, Cached: true}, nil
	}

	d, ok := o.registry.Get(name)
	if !ok {
		return nil, &ProviderError{Provider: name, Err: ErrUnknown}
	}
	src, ok := o.sources[name]
	if !ok {
		return nil, &ProviderError{Provider: name, Err: ErrNotConfigured}
	}
	if !o.limiter.CanMakeRequest(name, d.RateLimit) {
		return nil, &ProviderError{Provider: name, Err: ErrRateLimited}
	}

	o.limiter.RecordRequest(name)
	fixtures, err := src.FetchFixtures(ctx, date)
	if err != nil {
		providerAttempts.WithLabelValues(name, "error").Inc()
		return nil, &ProviderError{Provider: name, Err: err}
	}

	providerAttempts.WithLabelValues(name, "success").Inc()
	o.cache.SetProviderFixtures(ctx, date, name, fixtures)

	return &FixturesResult{Fixtures: fixtures, Provider: name, Cached: false}, nil
}

// ProviderStatus is one row of the availability report.
type ProviderStatus struct {
	Name      string            `json:"name"`
	Available bool              `json:"available"`
	Cost      provider.CostTier `json:"cost"`
	InWindow  int               `json:"inWindow"`
	RateLimit int               `json:"rateLimit"`
}

// ProviderStatuses reports each registered provider's configuration and
// whether it currently has rate budget. Read-only; never burns budget.
func (o *Orchestrator) ProviderStatuses() []ProviderStatus {
	descriptors := o.registry.All()
	statuses := make([]ProviderStatus, 0, len(descriptors))

	for _, d := range descriptors {
		inWindow := o.limiter.InWindow(d.Name)
		_, configured := o.sources[d.Name]
		statuses = append(statuses, ProviderStatus{
			Name:      d.Name,
			Available: configured && inWindow < d.RateLimit,
			Cost:      d.Cost,
			InWindow:  inWindow,
			RateLimit: d.RateLimit,
		})
	}

	return statuses
}

// ValidateProviders probes every configured provider with a lightweight
// fixtures call, caches a per-provider validation snapshot and the aggregate
// health status, and returns the aggregate. Probes respect rate limits like
// any other request.
func (o *Orchestrator) ValidateProviders(ctx context.Context) cache.APIStatus {
	date := time.Now().UTC().Format("2006-01-02")

	status := cache.APIStatus{
		Providers: make(map[string]bool),
		CheckedAt: time.Now().UTC(),
	}

	for _, d := range o.registry.All() {
		status.Total++

		validation := cache.ValidationStatus{Provider: d.Name, CheckedAt: status.CheckedAt}

		src, configured := o.sources[d.Name]
		switch {
		case !configured:
			validation.Message = "not configured"
		case !o.limiter.CanMakeRequest(d.Name, d.RateLimit):
			validation.Message = "rate limited"
		default:
			o.limiter.RecordRequest(d.Name)
			if _, err := src.FetchFixtures(ctx, date); err != nil {
				validation.Message = err.Error()
			} else {
				validation.OK = true
			}
		}

		if validation.OK {
			status.Healthy++
		}
		status.Providers[d.Name] = validation.OK
		o.cache.SetValidation(ctx, validation)
	}

	o.cache.SetAPIStatus(ctx, status)

	o.logger.Info().
		Int("healthy", status.Healthy).
		Int("total", status.Total).
		Msg("Provider validation complete")

	return status
}

// InvalidateDate drops the cached fixtures and live scores for a date across
// all providers.
func (o *Orchestrator) InvalidateDate(ctx context.Context, date string) {
	o.cache.InvalidateFixtures(ctx, date, o.registry.Names()...)
	o.cache.Store().Delete(ctx, cache.LiveScoresKey(date))
}

// resultProvider labels a cached result with the provider that originally
// produced it.
func resultProvider(fixtures []unified.Fixture) string {
	if len(fixtures) == 0 {
		return ""
	}
	return fixtures[0].Provider
}
