// Package feed defines the contracts upstream provider clients implement and
// shared helpers for bulk fetching. Each provider lives in its own subpackage
// with typed raw payloads and a dedicated normalizer, so schema drift fails
// loudly at the normalization boundary instead of producing zero-value fields
// downstream.
package feed

import (
	"context"

	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// Source fetches fixtures from one upstream provider and normalizes them
// into the unified schema.
type Source interface {
	// Name returns the provider name as registered in the provider
	// registry.
	Name() string

	// FetchFixtures returns the provider's fixtures for a YYYY-MM-DD
	// date. An empty slice with a nil error is a valid "no games" answer.
	FetchFixtures(ctx context.Context, date string) ([]unified.Fixture, error)
}

// LiveScoreSource is implemented by providers that serve in-play scores.
type LiveScoreSource interface {
	FetchLiveScores(ctx context.Context, date string) ([]unified.Fixture, error)
}

// OddsSource is implemented by providers that serve bookmaker odds. The
// returned quotes are raw; best-price selection happens in pkg/odds.
type OddsSource interface {
	FetchOdds(ctx context.Context, providerFixtureID string) ([]odds.Quote, error)
}

// LogoSource is implemented by providers that can resolve a team's logo URL.
type LogoSource interface {
	FetchTeamLogo(ctx context.Context, teamID string) (string, error)
}
