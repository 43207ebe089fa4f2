package sportmonks

import (
	"strconv"
	"strings"
	"time"

	"github.com/matchpulse/football-data-client/pkg/odds"
	"github.com/matchpulse/football-data-client/pkg/unified"
)

// statusMap translates SportMonks state short names onto the canonical
// vocabulary. Live states share the INPLAY prefix and are handled separately.
var statusMap = map[string]unified.Status{
	"NS":       unified.StatusScheduled,
	"TBA":      unified.StatusScheduled,
	"HT":       unified.StatusLive,
	"ET":       unified.StatusLive,
	"PEN_LIVE": unified.StatusLive,
	"FT":       unified.StatusFinished,
	"AET":      unified.StatusFinished,
	"FT_PEN":   unified.StatusFinished,
	"POSTP":    unified.StatusPostponed,
	"SUSP":     unified.StatusPostponed,
	"CANCL":    unified.StatusPostponed,
	"ABAN":     unified.StatusPostponed,
	"DELAYED":  unified.StatusPostponed,
	"INT":      unified.StatusPostponed,
	"AWARDED":  unified.StatusFinished,
	"WO":       unified.StatusFinished,
}

func mapStatus(code string) unified.Status {
	if s := unified.Status(code); s.IsValid() {
		return s
	}
	if strings.HasPrefix(code, "INPLAY") {
		return unified.StatusLive
	}
	if s, ok := statusMap[code]; ok {
		return s
	}
	return unified.StatusScheduled
}

func normalizeFixtures(env fixturesEnvelope) []unified.Fixture {
	fixtures := make([]unified.Fixture, 0, len(env.Data))

	for _, item := range env.Data {
		originalID := strconv.FormatInt(item.ID, 10)
		status := mapStatus(item.State.ShortName)

		fixture := unified.Fixture{
			ID:         unified.FixtureID(Name, originalID),
			Provider:   Name,
			OriginalID: originalID,
			League:     unified.League{Name: item.League.Name, Logo: item.League.ImageURL},
			Status:     status,
		}

		for _, p := range item.Participants {
			team := unified.Team{Name: p.Name, Logo: p.ImageURL}
			switch p.Meta.Location {
			case "home":
				fixture.HomeTeam = team
			case "away":
				fixture.AwayTeam = team
			}
		}

		if start, err := time.Parse("2006-01-02 15:04:05", item.StartingAt); err == nil {
			fixture.StartTime = start.UTC()
		}

		if status != unified.StatusScheduled {
			if score, ok := currentScore(item.Scores); ok {
				fixture.Score = score
			}
		}

		fixtures = append(fixtures, fixture)
	}

	return fixtures
}

// currentScore folds the per-participant CURRENT score entries into one pair.
func currentScore(entries []scoreEntry) (*unified.Score, bool) {
	var score unified.Score
	var haveHome, haveAway bool

	for _, e := range entries {
		if e.Description != "CURRENT" {
			continue
		}
		switch e.Score.Participant {
		case "home":
			score.Home = e.Score.Goals
			haveHome = true
		case "away":
			score.Away = e.Score.Goals
			haveAway = true
		}
	}

	if !haveHome || !haveAway {
		return nil, false
	}
	return &score, true
}

// normalizeOdds converts the flat SportMonks odds rows into raw quotes. The
// totals line and handicap ride along in dedicated fields rather than in the
// selection label, so they are stitched back where the processor expects them.
func normalizeOdds(env oddsEnvelope) []odds.Quote {
	var quotes []odds.Quote

	for _, entry := range env.Data {
		price, err := strconv.ParseFloat(entry.Value, 64)
		if err != nil || price <= 0 {
			continue
		}

		selection := entry.Label
		if entry.Total != "" {
			selection = entry.Label + " " + entry.Total
		}
		if entry.DisplayName != "" && strings.Contains(entry.DisplayName, "-") {
			selection = entry.DisplayName
		}

		quote := odds.Quote{
			Bookmaker: entry.Bookmaker.Name,
			Market:    entry.MarketName,
			Selection: selection,
			Price:     price,
		}
		if entry.Handicap != "" {
			if h, err := strconv.ParseFloat(entry.Handicap, 64); err == nil {
				quote.Handicap = h
			}
		}

		quotes = append(quotes, quote)
	}

	return quotes
}
