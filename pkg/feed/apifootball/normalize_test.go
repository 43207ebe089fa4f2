package apifootball

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpulse/football-data-client/pkg/unified"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		code string
		want unified.Status
	}{
		{"NS", unified.StatusScheduled},
		{"TBD", unified.StatusScheduled},
		{"1H", unified.StatusLive},
		{"HT", unified.StatusLive},
		{"2H", unified.StatusLive},
		{"ET", unified.StatusLive},
		{"FT", unified.StatusFinished},
		{"AET", unified.StatusFinished},
		{"PEN", unified.StatusFinished},
		{"PST", unified.StatusPostponed},
		{"CANC", unified.StatusPostponed},
		{"ABD", unified.StatusPostponed},
		{"XYZ", unified.StatusScheduled}, // unknown defaults to scheduled
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, mapStatus(tt.code))
		})
	}
}

func TestMapStatus_CanonicalPassThrough(t *testing.T) {
	// Mapping an already-canonical value must be a no-op, so normalizing
	// twice gives the same result as normalizing once.
	for _, s := range []unified.Status{
		unified.StatusScheduled,
		unified.StatusLive,
		unified.StatusFinished,
		unified.StatusPostponed,
	} {
		assert.Equal(t, s, mapStatus(string(s)))
		assert.Equal(t, s, mapStatus(string(mapStatus(string(s)))))
	}
}

const sampleFixturesJSON = `{
  "response": [
    {
      "fixture": {"id": 868549, "date": "2026-08-30T14:00:00+00:00", "status": {"short": "NS"}},
      "league": {"name": "Premier League", "logo": "https://media.api-sports.io/leagues/39.png"},
      "teams": {
        "home": {"id": 42, "name": "Arsenal", "logo": "https://media.api-sports.io/teams/42.png"},
        "away": {"id": 49, "name": "Chelsea", "logo": "https://media.api-sports.io/teams/49.png"}
      },
      "goals": {"home": null, "away": null}
    },
    {
      "fixture": {"id": 868550, "date": "2026-08-30T12:00:00+00:00", "status": {"short": "FT"}},
      "league": {"name": "Premier League", "logo": ""},
      "teams": {
        "home": {"id": 33, "name": "Manchester United", "logo": ""},
        "away": {"id": 40, "name": "Liverpool", "logo": ""}
      },
      "goals": {"home": 2, "away": 2}
    }
  ]
}`

func TestNormalizeFixtures(t *testing.T) {
	var env fixturesEnvelope
	require.NoError(t, json.Unmarshal([]byte(sampleFixturesJSON), &env))

	fixtures := normalizeFixtures(env)
	require.Len(t, fixtures, 2)

	first := fixtures[0]
	assert.Equal(t, "api-football-868549", first.ID)
	assert.Equal(t, Name, first.Provider)
	assert.Equal(t, "868549", first.OriginalID)
	assert.Equal(t, "Arsenal", first.HomeTeam.Name)
	assert.Equal(t, "Chelsea", first.AwayTeam.Name)
	assert.Equal(t, "Premier League", first.League.Name)
	assert.Equal(t, unified.StatusScheduled, first.Status)
	assert.Equal(t, time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC), first.StartTime)
	assert.Nil(t, first.Score, "scheduled fixtures carry no score")

	second := fixtures[1]
	assert.Equal(t, unified.StatusFinished, second.Status)
	require.NotNil(t, second.Score)
	assert.Equal(t, 2, second.Score.Home)
	assert.Equal(t, 2, second.Score.Away)
}

const sampleOddsJSON = `{
  "response": [
    {
      "bookmakers": [
        {
          "name": "Bet365",
          "bets": [
            {
              "name": "Match Winner",
              "values": [
                {"value": "Home", "odd": "2.10"},
                {"value": "Draw", "odd": "3.40"},
                {"value": "Away", "odd": "3.60"}
              ]
            },
            {
              "name": "Both Teams Score",
              "values": [
                {"value": "Yes", "odd": "1.72"},
                {"value": "No", "odd": "not-a-number"}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestNormalizeOdds(t *testing.T) {
	var env oddsEnvelope
	require.NoError(t, json.Unmarshal([]byte(sampleOddsJSON), &env))

	quotes := normalizeOdds(env)
	require.Len(t, quotes, 4, "unparseable prices are dropped")

	assert.Equal(t, "Bet365", quotes[0].Bookmaker)
	assert.Equal(t, "Match Winner", quotes[0].Market)
	assert.Equal(t, "Home", quotes[0].Selection)
	assert.Equal(t, 2.10, quotes[0].Price)

	assert.Equal(t, "Both Teams Score", quotes[3].Market)
	assert.Equal(t, "Yes", quotes[3].Selection)
}
