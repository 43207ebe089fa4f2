// Package unified defines the provider-agnostic fixture schema that every
// provider normalizer produces.
package unified

import "time"

// Status is the canonical fixture status. Provider-native vocabularies are
// mapped onto these four values at the normalization boundary; anything
// unmapped defaults to StatusScheduled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
)

// IsValid reports whether s is one of the four canonical statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed:
		return true
	}
	return false
}

// ParseStatus returns s as a Status if canonical, StatusScheduled otherwise.
func ParseStatus(s string) Status {
	status := Status(s)
	if status.IsValid() {
		return status
	}
	return StatusScheduled
}

// Team is one side of a fixture.
type Team struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// League is the competition a fixture belongs to.
type League struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Score is the current or final score. Present only once a match has started.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchOdds holds decimal 1X2 prices when the provider quotes them.
type MatchOdds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Fixture is one sporting fixture in the unified schema. Constructed fresh on
// every successful provider fetch and never mutated afterwards.
type Fixture struct {
	// ID is the synthesized, provider-prefixed id, unique within a fetch
	// result set.
	ID string `json:"id"`

	// Provider names the originating source.
	Provider string `json:"provider"`

	// OriginalID is the opaque id in the provider's own space.
	OriginalID string `json:"originalId"`

	HomeTeam Team   `json:"homeTeam"`
	AwayTeam Team   `json:"awayTeam"`
	League   League `json:"league"`

	// StartTime is the scheduled kickoff instant.
	StartTime time.Time `json:"startTime"`

	Status Status `json:"status"`

	Score *Score     `json:"score,omitempty"`
	Odds  *MatchOdds `json:"odds,omitempty"`
}

// FixtureID synthesizes the provider-prefixed fixture id.
func FixtureID(provider, originalID string) string {
	return provider + "-" + originalID
}
