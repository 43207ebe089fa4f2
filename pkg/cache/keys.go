package cache

import (
	"sort"
	"strings"
)

// Key construction for every cache category. The formats are load-bearing:
// operational tooling invalidates entries by building these strings directly,
// so they must stay stable byte for byte.
//
//	fixtures:{date}              fixtures for one date, any provider
//	fixtures:{date}:{provider}   fixtures for one date from one provider
//	validation:{provider}        per-provider validation snapshot
//	live:{date}                  live scores for one date
//	api:status                   aggregate API health
//	ratelimit:{provider}         rate-limit bookkeeping
//	odds:detailed:{fixtureId}    processed odds for one fixture
//	predictions:{date}           predictions for one date
//	predictions:fixture:{id}     predictions for one fixture
//	enriched:fixture:{id}        enriched fixture data
//	teams:logos:{id1,id2,...}    team logos, ids sorted and comma-joined

// FixturesKey builds the fixtures key for a date, optionally scoped to one
// provider.
func FixturesKey(date string, provider ...string) string {
	if len(provider) > 0 && provider[0] != "" {
		return "fixtures:" + date + ":" + provider[0]
	}
	return "fixtures:" + date
}

// ValidationKey builds the per-provider validation status key.
func ValidationKey(provider string) string {
	return "validation:" + provider
}

// LiveScoresKey builds the live scores key for a date.
func LiveScoresKey(date string) string {
	return "live:" + date
}

// APIStatusKey is the aggregate API health key.
func APIStatusKey() string {
	return "api:status"
}

// RateLimitKey builds the rate-limit bookkeeping key for a provider.
func RateLimitKey(provider string) string {
	return "ratelimit:" + provider
}

// OddsKey builds the detailed odds key for a fixture.
func OddsKey(fixtureID string) string {
	return "odds:detailed:" + fixtureID
}

// PredictionsKey builds the predictions key for a date.
func PredictionsKey(date string) string {
	return "predictions:" + date
}

// FixturePredictionsKey builds the predictions key scoped to one fixture.
func FixturePredictionsKey(fixtureID string) string {
	return "predictions:fixture:" + fixtureID
}

// EnrichedKey builds the enriched data key for a fixture.
func EnrichedKey(fixtureID string) string {
	return "enriched:fixture:" + fixtureID
}

// TeamLogosKey builds the team logos key. IDs are sorted before joining so
// the same set of teams always produces the same key.
func TeamLogosKey(teamIDs []string) string {
	ids := make([]string, len(teamIDs))
	copy(ids, teamIDs)
	sort.Strings(ids)
	return "teams:logos:" + strings.Join(ids, ",")
}
