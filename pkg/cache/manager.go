package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchpulse/football-data-client/pkg/logging"
	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// TTLConfig holds the per-category TTLs. TTL is inversely proportional to
// real-world volatility: live scores change every few seconds, team logos
// essentially never.
type TTLConfig struct {
	Default     time.Duration
	Fixtures    time.Duration
	Validation  time.Duration
	LiveScores  time.Duration
	Odds        time.Duration
	Predictions time.Duration
	Enriched    time.Duration
	TeamLogos   time.Duration
}

// DefaultTTLConfig returns the stock TTLs.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Default:     5 * time.Minute,
		Fixtures:    10 * time.Minute,
		Validation:  3 * time.Minute,
		LiveScores:  30 * time.Second,
		Odds:        10 * time.Minute,
		Predictions: 30 * time.Minute,
		Enriched:    time.Hour,
		TeamLogos:   24 * time.Hour,
	}
}

// ValidationStatus is the cached per-provider validation snapshot.
type ValidationStatus struct {
	Provider  string    `json:"provider"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// APIStatus is the cached aggregate health snapshot across providers.
type APIStatus struct {
	Healthy   int             `json:"healthy"`
	Total     int             `json:"total"`
	Providers map[string]bool `json:"providers"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Manager translates domain concepts into (key, ttl) pairs on top of the
// fail-soft Store. Each category gets a typed get/set pair so callers never
// hand-build keys.
type Manager struct {
	store  *Store
	ttl    TTLConfig
	logger zerolog.Logger
}

// NewManager creates a category-aware cache manager.
func NewManager(store *Store, ttl TTLConfig) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logging.NewLogger("cache-manager"),
	}
}

// Store exposes the underlying fail-soft store for callers that need raw
// access (diagnostics, ad hoc categories).
func (m *Manager) Store() *Store {
	return m.store
}

// TTL returns the active TTL configuration.
func (m *Manager) TTL() TTLConfig {
	return m.ttl
}

// --- fixtures ---

func (m *Manager) GetFixtures(ctx context.Context, date string) ([]unified.Fixture, bool) {
	var fixtures []unified.Fixture
	if !m.store.Get(ctx, FixturesKey(date), &fixtures) {
		return nil, false
	}
	return fixtures, true
}

func (m *Manager) SetFixtures(ctx context.Context, date string, fixtures []unified.Fixture) {
	m.store.Set(ctx, FixturesKey(date), fixtures, m.ttl.Fixtures)
}

func (m *Manager) GetProviderFixtures(ctx context.Context, date, provider string) ([]unified.Fixture, bool) {
	var fixtures []unified.Fixture
	if !m.store.Get(ctx, FixturesKey(date, provider), &fixtures) {
		return nil, false
	}
	return fixtures, true
}

func (m *Manager) SetProviderFixtures(ctx context.Context, date, provider string, fixtures []unified.Fixture) {
	m.store.Set(ctx, FixturesKey(date, provider), fixtures, m.ttl.Fixtures)
}

// --- live scores ---

func (m *Manager) GetLiveScores(ctx context.Context, date string) ([]unified.Fixture, bool) {
	var fixtures []unified.Fixture
	if !m.store.Get(ctx, LiveScoresKey(date), &fixtures) {
		return nil, false
	}
	return fixtures, true
}

func (m *Manager) SetLiveScores(ctx context.Context, date string, fixtures []unified.Fixture) {
	m.store.Set(ctx, LiveScoresKey(date), fixtures, m.ttl.LiveScores)
}

// --- odds ---

func (m *Manager) GetOdds(ctx context.Context, fixtureID string) (*odds.ProcessedOdds, bool) {
	var processed odds.ProcessedOdds
	if !m.store.Get(ctx, OddsKey(fixtureID), &processed) {
		return nil, false
	}
	return &processed, true
}

func (m *Manager) SetOdds(ctx context.Context, fixtureID string, processed *odds.ProcessedOdds) {
	m.store.Set(ctx, OddsKey(fixtureID), processed, m.ttl.Odds)
}

// --- predictions ---

// GetPredictions unmarshals the cached predictions payload for a date into
// dest. Predictions are provider passthrough, so the shape is caller-defined.
func (m *Manager) GetPredictions(ctx context.Context, date string, dest any) bool {
	return m.store.Get(ctx, PredictionsKey(date), dest)
}

func (m *Manager) SetPredictions(ctx context.Context, date string, value any) {
	m.store.Set(ctx, PredictionsKey(date), value, m.ttl.Predictions)
}

func (m *Manager) GetFixturePredictions(ctx context.Context, fixtureID string, dest any) bool {
	return m.store.Get(ctx, FixturePredictionsKey(fixtureID), dest)
}

func (m *Manager) SetFixturePredictions(ctx context.Context, fixtureID string, value any) {
	m.store.Set(ctx, FixturePredictionsKey(fixtureID), value, m.ttl.Predictions)
}

// --- enriched fixture data ---

func (m *Manager) GetEnriched(ctx context.Context, fixtureID string, dest any) bool {
	return m.store.Get(ctx, EnrichedKey(fixtureID), dest)
}

func (m *Manager) SetEnriched(ctx context.Context, fixtureID string, value any) {
	m.store.Set(ctx, EnrichedKey(fixtureID), value, m.ttl.Enriched)
}

// --- validation / aggregate status ---

func (m *Manager) GetValidation(ctx context.Context, provider string) (*ValidationStatus, bool) {
	var status ValidationStatus
	if !m.store.Get(ctx, ValidationKey(provider), &status) {
		return nil, false
	}
	return &status, true
}

func (m *Manager) SetValidation(ctx context.Context, status ValidationStatus) {
	m.store.Set(ctx, ValidationKey(status.Provider), status, m.ttl.Validation)
}

func (m *Manager) GetAPIStatus(ctx context.Context) (*APIStatus, bool) {
	var status APIStatus
	if !m.store.Get(ctx, APIStatusKey(), &status) {
		return nil, false
	}
	return &status, true
}

func (m *Manager) SetAPIStatus(ctx context.Context, status APIStatus) {
	m.store.Set(ctx, APIStatusKey(), status, m.ttl.Validation)
}

// --- team logos ---

func (m *Manager) GetTeamLogos(ctx context.Context, teamIDs []string) (map[string]string, bool) {
	var logos map[string]string
	if !m.store.Get(ctx, TeamLogosKey(teamIDs), &logos) {
		return nil, false
	}
	return logos, true
}

func (m *Manager) SetTeamLogos(ctx context.Context, teamIDs []string, logos map[string]string) {
	m.store.Set(ctx, TeamLogosKey(teamIDs), logos, m.ttl.TeamLogos)
}

// --- invalidation ---

// InvalidateFixtures deletes the date-level fixtures entry plus any
// provider-scoped entries for the given providers.
func (m *Manager) InvalidateFixtures(ctx context.Context, date string, providers ...string) {
	m.store.Delete(ctx, FixturesKey(date))
	for _, p := range providers {
		m.store.Delete(ctx, FixturesKey(date, p))
	}
	m.logger.Debug().Str("date", date).Int("providers", len(providers)).Msg("Invalidated fixtures")
}

// InvalidateAllValidations deletes every provider's validation snapshot and
// the aggregate status. The provider set is enumerated explicitly because not
// all backends support key scans.
func (m *Manager) InvalidateAllValidations(ctx context.Context, providerNames []string) {
	for _, name := range providerNames {
		m.store.Delete(ctx, ValidationKey(name))
	}
	m.store.Delete(ctx, APIStatusKey())
	m.logger.Debug().Int("providers", len(providerNames)).Msg("Invalidated validation snapshots")
}

// InvalidateOdds deletes the processed odds entry for one fixture.
func (m *Manager) InvalidateOdds(ctx context.Context, fixtureID string) {
	m.store.Delete(ctx, OddsKey(fixtureID))
}

// InvalidatePredictions deletes the predictions entry for a date.
func (m *Manager) InvalidatePredictions(ctx context.Context, date string) {
	m.store.Delete(ctx, PredictionsKey(date))
}
