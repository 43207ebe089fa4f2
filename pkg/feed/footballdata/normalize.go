package footballdata

import (
	"strconv"
	"time"

	"github.com/matchpulse/football-data-client/pkg/unified"
)

// statusMap translates football-data.org match statuses onto the canonical
// vocabulary. Unmapped values default to scheduled.
var statusMap = map[string]unified.Status{
	"SCHEDULED": unified.StatusScheduled,
	"TIMED":     unified.StatusScheduled,
	"IN_PLAY":   unified.StatusLive,
	"PAUSED":    unified.StatusLive,
	"LIVE":      unified.StatusLive,
	"FINISHED":  unified.StatusFinished,
	"POSTPONED": unified.StatusPostponed,
	"SUSPENDED": unified.StatusPostponed,
	"CANCELLED": unified.StatusPostponed,
}

func mapStatus(code string) unified.Status {
	if s := unified.Status(code); s.IsValid() {
		return s
	}
	if s, ok := statusMap[code]; ok {
		return s
	}
	return unified.StatusScheduled
}

func normalizeMatches(env matchesEnvelope) []unified.Fixture {
	fixtures := make([]unified.Fixture, 0, len(env.Matches))

	for _, m := range env.Matches {
		originalID := strconv.FormatInt(m.ID, 10)
		status := mapStatus(m.Status)

		fixture := unified.Fixture{
			ID:         unified.FixtureID(Name, originalID),
			Provider:   Name,
			OriginalID: originalID,
			HomeTeam:   unified.Team{Name: m.HomeTeam.Name, Logo: m.HomeTeam.Crest},
			AwayTeam:   unified.Team{Name: m.AwayTeam.Name, Logo: m.AwayTeam.Crest},
			League:     unified.League{Name: m.Competition.Name, Logo: m.Competition.Emblem},
			Status:     status,
		}

		if start, err := time.Parse(time.RFC3339, m.UTCDate); err == nil {
			fixture.StartTime = start.UTC()
		}

		if status != unified.StatusScheduled && m.Score.FullTime.Home != nil && m.Score.FullTime.Away != nil {
			fixture.Score = &unified.Score{Home: *m.Score.FullTime.Home, Away: *m.Score.FullTime.Away}
		}

		fixtures = append(fixtures, fixture)
	}

	return fixtures
}
