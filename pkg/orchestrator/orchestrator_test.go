package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpulse/football-data-client/pkg/cache"
	"github.com/matchpulse/football-data-client/pkg/feed"
	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/provider"
	"github.com/matchpulse/football-data-client/pkg/ratelimit"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// stubSource is a scriptable provider for fallback tests.
type stubSource struct {
	name     string
	fixtures []unified.Fixture
	quotes   []odds.Quote
	err      error

	calls     atomic.Int64
	oddsCalls atomic.Int64
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchFixtures(_ context.Context, _ string) ([]unified.Fixture, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.fixtures, nil
}

func (s *stubSource) FetchLiveScores(_ context.Context, _ string) ([]unified.Fixture, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.fixtures, nil
}

func (s *stubSource) FetchOdds(_ context.Context, _ string) ([]odds.Quote, error) {
	s.oddsCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

func fixturesFor(providerName string) []unified.Fixture {
	return []unified.Fixture{{
		ID:         unified.FixtureID(providerName, "100"),
		Provider:   providerName,
		OriginalID: "100",
		HomeTeam:   unified.Team{Name: "Home FC"},
		AwayTeam:   unified.Team{Name: "Away FC"},
		Status:     unified.StatusScheduled,
	}}
}

func newTestOrchestrator(t *testing.T, sources ...feed.Source) *Orchestrator {
	t.Helper()

	backend := cache.NewMemoryBackend()
	t.Cleanup(func() { _ = backend.Close() })

	manager := cache.NewManager(cache.NewStore(backend, "memory"), cache.DefaultTTLConfig())

	return New(Config{
		Cache:   manager,
		Limiter: ratelimit.NewLimiter(),
		Sources: sources,
	})
}

func TestFetchFixtures_FirstProviderWins(t *testing.T) {
	primary := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	secondary := &stubSource{name: "football-data", fixtures: fixturesFor("football-data")}

	o := newTestOrchestrator(t, primary, secondary)

	result, err := o.FetchFixtures(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, "api-football", result.Provider)
	assert.False(t, result.Cached)
	assert.Equal(t, int64(1), primary.calls.Load())
	assert.Zero(t, secondary.calls.Load(), "fallback must not fire when the primary delivers")
}

func TestFetchFixtures_FallsThroughFailuresInPriorityOrder(t *testing.T) {
	primary := &stubSource{name: "api-football", err: errors.New("upstream 500")}
	secondary := &stubSource{name: "football-data"} // empty result
	tertiary := &stubSource{name: "sportmonks", fixtures: fixturesFor("sportmonks")}

	o := newTestOrchestrator(t, primary, secondary, tertiary)

	result, err := o.FetchFixtures(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, "sportmonks", result.Provider)
	assert.Equal(t, int64(1), primary.calls.Load())
	assert.Equal(t, int64(1), secondary.calls.Load())
	assert.Equal(t, int64(1), tertiary.calls.Load())
}

func TestFetchFixtures_ExhaustionEnumeratesEveryReason(t *testing.T) {
	primary := &stubSource{name: "api-football", err: errors.New("connection refused")}
	secondary := &stubSource{name: "football-data"} // empty result

	o := newTestOrchestrator(t, primary, secondary)

	_, err := o.FetchFixtures(context.Background(), "2026-08-30")
	require.Error(t, err)

	var exhaustion *ExhaustionError
	require.ErrorAs(t, err, &exhaustion)
	require.Len(t, exhaustion.Failures, 3, "every registry candidate gets a reason")

	msg := err.Error()
	assert.Contains(t, msg, "api-football: connection refused")
	assert.Contains(t, msg, "football-data: no data")
	assert.Contains(t, msg, "sportmonks: not configured")
	assert.Contains(t, msg, "2026-08-30")
}

func TestFetchFixtures_CacheHitSkipsUpstream(t *testing.T) {
	src := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	o := newTestOrchestrator(t, src)

	ctx := context.Background()
	first, err := o.FetchFixtures(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := o.FetchFixtures(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "api-football", second.Provider)
	assert.Equal(t, int64(1), src.calls.Load(), "cache hit must not reach upstream")
}

func TestFetchFixtures_RateLimitedProviderIsSkipped(t *testing.T) {
	primary := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	secondary := &stubSource{name: "football-data", fixtures: fixturesFor("football-data")}

	o := newTestOrchestrator(t, primary, secondary)

	// Burn the primary's entire 30/min budget.
	for i := 0; i < 30; i++ {
		o.limiter.RecordRequest("api-football")
	}

	result, err := o.FetchFixtures(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, "football-data", result.Provider)
	assert.Zero(t, primary.calls.Load(), "rate-limited provider must not be called")
}

func TestFetchFixtures_SingleFlightDedupesConcurrentMisses(t *testing.T) {
	src := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	o := newTestOrchestrator(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := o.FetchFixtures(context.Background(), "2026-08-30")
			assert.NoError(t, err)
			assert.Len(t, result.Fixtures, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), src.calls.Load(), "concurrent misses collapse into one upstream call")
}

func TestDeduped_CallersGetIndependentResults(t *testing.T) {
	// Single-flight hands every waiter the winner's value; each caller must
	// still get its own copy so mutating one result cannot corrupt another's.
	o := newTestOrchestrator(t)

	shared := &FixturesResult{Fixtures: fixturesFor("api-football"), Provider: "api-football"}

	got, err := o.deduped("fixtures:2026-08-30", func() (*FixturesResult, error) {
		return shared, nil
	})
	require.NoError(t, err)

	got.Provider = "mutated"
	got.Fixtures[0].HomeTeam.Name = "mutated"
	got.Fixtures = append(got.Fixtures, unified.Fixture{ID: "extra"})

	assert.Equal(t, "api-football", shared.Provider)
	assert.Equal(t, "Home FC", shared.Fixtures[0].HomeTeam.Name)
	assert.Len(t, shared.Fixtures, 1)
}

func TestFetchLiveScores_UsesLiveCapableProviders(t *testing.T) {
	live := fixturesFor("api-football")
	live[0].Status = unified.StatusLive
	src := &stubSource{name: "api-football", fixtures: live}

	o := newTestOrchestrator(t, src)

	result, err := o.FetchLiveScores(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, unified.StatusLive, result.Fixtures[0].Status)

	cached, err := o.FetchLiveScores(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.True(t, cached.Cached)
}

func TestFetchOdds_ProcessesAndCaches(t *testing.T) {
	src := &stubSource{name: "api-football", quotes: []odds.Quote{
		{Bookmaker: "A", Market: "Match Winner", Selection: "Home", Price: 2.1},
		{Bookmaker: "B", Market: "Match Winner", Selection: "Home", Price: 2.3},
		{Bookmaker: "A", Market: "Match Winner", Selection: "Draw", Price: 3.4},
		{Bookmaker: "A", Market: "Match Winner", Selection: "Away", Price: 3.6},
	}}

	o := newTestOrchestrator(t, src)

	result, err := o.FetchOdds(context.Background(), "api-football-100")
	require.NoError(t, err)
	assert.Equal(t, 2.3, result.Odds.FullTimeResult.Home, "best price across bookmakers")
	assert.False(t, result.Cached)

	cached, err := o.FetchOdds(context.Background(), "api-football-100")
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, int64(1), src.oddsCalls.Load())
}

func TestFetchOdds_OnlyOwningProviderIsQueried(t *testing.T) {
	// Fixture ids are opaque per provider: sportmonks fixture 868549 is an
	// unrelated match, so an api-football failure must surface as an error
	// rather than fall through to sportmonks.
	owner := &stubSource{name: "api-football", err: errors.New("rate limit exceeded")}
	other := &stubSource{name: "sportmonks", quotes: []odds.Quote{
		{Market: "Match Winner", Selection: "Home", Price: 9.99},
	}}

	o := newTestOrchestrator(t, owner, other)

	ctx := context.Background()
	_, err := o.FetchOdds(ctx, "api-football-868549")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "api-football", perr.Provider)

	assert.Equal(t, int64(1), owner.oddsCalls.Load())
	assert.Zero(t, other.oddsCalls.Load(), "no cross-provider fallback for odds")

	_, ok := o.cache.GetOdds(ctx, "api-football-868549")
	assert.False(t, ok, "a failed fetch must not cache anything")
}

func TestFetchOdds_OwnerResolvedAcrossDashedNames(t *testing.T) {
	// Provider names contain dashes themselves, so ownership is resolved by
	// registry prefix match, not by splitting the id at a dash.
	sm := &stubSource{name: "sportmonks", quotes: []odds.Quote{{Market: "Match Winner", Selection: "Home", Price: 2.0}}}
	o := newTestOrchestrator(t, sm)

	result, err := o.FetchOdds(context.Background(), "sportmonks-7")
	require.NoError(t, err)
	assert.Equal(t, "sportmonks", result.Provider)
	assert.Equal(t, int64(1), sm.oddsCalls.Load())
}

func TestFetchOdds_Errors(t *testing.T) {
	fd := &stubSource{name: "football-data", quotes: []odds.Quote{{Market: "Match Winner", Selection: "Home", Price: 1.5}}}
	o := newTestOrchestrator(t, fd)

	_, err := o.FetchOdds(context.Background(), "nonsense-1")
	assert.ErrorIs(t, err, ErrUnknown)

	// football-data has no odds capability in the registry.
	_, err = o.FetchOdds(context.Background(), "football-data-9")
	assert.ErrorIs(t, err, ErrOddsUnsupported)
	assert.Zero(t, fd.oddsCalls.Load())

	_, err = o.FetchOdds(context.Background(), "sportmonks-9")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchProviderFixtures(t *testing.T) {
	src := &stubSource{name: "football-data", fixtures: fixturesFor("football-data")}
	o := newTestOrchestrator(t, src)

	result, err := o.FetchProviderFixtures(context.Background(), "2026-08-30", "football-data")
	require.NoError(t, err)
	assert.False(t, result.Cached)

	cached, err := o.FetchProviderFixtures(context.Background(), "2026-08-30", "football-data")
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, int64(1), src.calls.Load())
}

func TestFetchProviderFixtures_Errors(t *testing.T) {
	o := newTestOrchestrator(t, &stubSource{name: "api-football", fixtures: fixturesFor("api-football")})

	_, err := o.FetchProviderFixtures(context.Background(), "2026-08-30", "nonsense")
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = o.FetchProviderFixtures(context.Background(), "2026-08-30", "sportmonks")
	assert.ErrorIs(t, err, ErrNotConfigured)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sportmonks", perr.Provider)
}

func TestProviderStatuses(t *testing.T) {
	src := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	o := newTestOrchestrator(t, src)

	statuses := o.ProviderStatuses()
	require.Len(t, statuses, 3)

	assert.Equal(t, "api-football", statuses[0].Name, "statuses follow fallback order")
	assert.True(t, statuses[0].Available)
	assert.Equal(t, provider.CostPaid, statuses[0].Cost)

	assert.False(t, statuses[1].Available, "unconfigured provider reports unavailable")

	for i := 0; i < 30; i++ {
		o.limiter.RecordRequest("api-football")
	}
	statuses = o.ProviderStatuses()
	assert.False(t, statuses[0].Available, "exhausted rate window reports unavailable")
	assert.Equal(t, 30, statuses[0].InWindow)
}

func TestValidateProviders(t *testing.T) {
	healthy := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	broken := &stubSource{name: "football-data", err: errors.New("auth failed")}

	o := newTestOrchestrator(t, healthy, broken)

	status := o.ValidateProviders(context.Background())
	assert.Equal(t, 3, status.Total)
	assert.Equal(t, 1, status.Healthy)
	assert.True(t, status.Providers["api-football"])
	assert.False(t, status.Providers["football-data"])
	assert.False(t, status.Providers["sportmonks"])

	// Snapshots land in the cache for the status endpoint to serve.
	cached, ok := o.cache.GetAPIStatus(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, cached.Healthy)

	validation, ok := o.cache.GetValidation(context.Background(), "football-data")
	require.True(t, ok)
	assert.False(t, validation.OK)
	assert.Equal(t, "auth failed", validation.Message)
}

type logoStub struct {
	stubSource
	logoCalls atomic.Int64
}

func (s *logoStub) FetchTeamLogo(_ context.Context, teamID string) (string, error) {
	s.logoCalls.Add(1)
	return "https://cdn.example/" + teamID + ".png", nil
}

func TestFetchTeamLogos_CachesBatch(t *testing.T) {
	src := &logoStub{stubSource: stubSource{name: "api-football"}}
	o := newTestOrchestrator(t, src)

	ctx := context.Background()
	ids := []string{"42", "49"}

	logos := o.FetchTeamLogos(ctx, ids)
	require.Len(t, logos, 2)
	assert.Equal(t, "https://cdn.example/42.png", logos["42"])

	again := o.FetchTeamLogos(ctx, ids)
	assert.Equal(t, logos, again)
	assert.Equal(t, int64(2), src.logoCalls.Load(), "second batch served from cache")
}

func TestFetchTeamLogos_NoLogoCapableSource(t *testing.T) {
	src := &stubSource{name: "api-football"} // no LogoSource implementation
	o := newTestOrchestrator(t, src)

	logos := o.FetchTeamLogos(context.Background(), []string{"42"})
	assert.Empty(t, logos)
}

func TestInvalidateDate(t *testing.T) {
	src := &stubSource{name: "api-football", fixtures: fixturesFor("api-football")}
	o := newTestOrchestrator(t, src)

	ctx := context.Background()
	_, err := o.FetchFixtures(ctx, "2026-08-30")
	require.NoError(t, err)

	o.InvalidateDate(ctx, "2026-08-30")

	result, err := o.FetchFixtures(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.False(t, result.Cached, "invalidation forces the next read upstream")
	assert.Equal(t, int64(2), src.calls.Load())
}
