package apifootball

import (
	"strconv"
	"time"

	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// statusMap translates API-Football short status codes onto the canonical
// vocabulary. Unmapped codes default to scheduled.
var statusMap = map[string]unified.Status{
	"TBD":  unified.StatusScheduled,
	"NS":   unified.StatusScheduled,
	"1H":   unified.StatusLive,
	"HT":   unified.StatusLive,
	"2H":   unified.StatusLive,
	"ET":   unified.StatusLive,
	"BT":   unified.StatusLive,
	"P":    unified.StatusLive,
	"LIVE": unified.StatusLive,
	"FT":   unified.StatusFinished,
	"AET":  unified.StatusFinished,
	"PEN":  unified.StatusFinished,
	"PST":  unified.StatusPostponed,
	"SUSP": unified.StatusPostponed,
	"INT":  unified.StatusPostponed,
	"CANC": unified.StatusPostponed,
	"ABD":  unified.StatusPostponed,
}

// mapStatus resolves a provider status code. Already-canonical values pass
// through untouched so re-mapping is a no-op.
func mapStatus(code string) unified.Status {
	if s := unified.Status(code); s.IsValid() {
		return s
	}
	if s, ok := statusMap[code]; ok {
		return s
	}
	return unified.StatusScheduled
}

// normalizeFixtures maps the raw envelope into unified fixtures.
func normalizeFixtures(env fixturesEnvelope) []unified.Fixture {
	fixtures := make([]unified.Fixture, 0, len(env.Response))

	for _, item := range env.Response {
		originalID := strconv.FormatInt(item.Fixture.ID, 10)
		status := mapStatus(item.Fixture.Status.Short)

		fixture := unified.Fixture{
			ID:         unified.FixtureID(Name, originalID),
			Provider:   Name,
			OriginalID: originalID,
			HomeTeam:   unified.Team{Name: item.Teams.Home.Name, Logo: item.Teams.Home.Logo},
			AwayTeam:   unified.Team{Name: item.Teams.Away.Name, Logo: item.Teams.Away.Logo},
			League:     unified.League{Name: item.League.Name, Logo: item.League.Logo},
			Status:     status,
		}

		if start, err := time.Parse(time.RFC3339, item.Fixture.Date); err == nil {
			fixture.StartTime = start.UTC()
		}

		// Score only once the match has started.
		if status != unified.StatusScheduled && item.Goals.Home != nil && item.Goals.Away != nil {
			fixture.Score = &unified.Score{Home: *item.Goals.Home, Away: *item.Goals.Away}
		}

		fixtures = append(fixtures, fixture)
	}

	return fixtures
}

// normalizeOdds flattens the bookmaker/bet/value tree into raw quotes for
// the odds processor.
func normalizeOdds(env oddsEnvelope) []odds.Quote {
	var quotes []odds.Quote

	for _, item := range env.Response {
		for _, bm := range item.Bookmakers {
			for _, b := range bm.Bets {
				for _, v := range b.Values {
					price, err := strconv.ParseFloat(v.Odd, 64)
					if err != nil || price <= 0 {
						continue
					}
					quotes = append(quotes, odds.Quote{
						Bookmaker: bm.Name,
						Market:    b.Name,
						Selection: v.Value,
						Price:     price,
					})
				}
			}
		}
	}

	return quotes
}
