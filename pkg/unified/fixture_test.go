package unified

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusScheduled.IsValid())
	assert.True(t, StatusLive.IsValid())
	assert.True(t, StatusFinished.IsValid())
	assert.True(t, StatusPostponed.IsValid())

	assert.False(t, Status("FT").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestParseStatus_DefaultsToScheduled(t *testing.T) {
	assert.Equal(t, StatusLive, ParseStatus("live"))
	assert.Equal(t, StatusScheduled, ParseStatus("IN_PLAY"))
	assert.Equal(t, StatusScheduled, ParseStatus(""))
}

func TestFixtureID(t *testing.T) {
	assert.Equal(t, "api-football-12345", FixtureID("api-football", "12345"))
}

func TestFixture_JSONOmitsAbsentScoreAndOdds(t *testing.T) {
	f := Fixture{
		ID:         "api-football-1",
		Provider:   "api-football",
		OriginalID: "1",
		HomeTeam:   Team{Name: "Arsenal"},
		AwayTeam:   Team{Name: "Chelsea"},
		League:     League{Name: "Premier League"},
		StartTime:  time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		Status:     StatusScheduled,
	}

	data, err := json.Marshal(f)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), `"score"`)
	assert.NotContains(t, string(data), `"odds"`)

	f.Score = &Score{Home: 2, Away: 1}
	data, err = json.Marshal(f)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"score":{"home":2,"away":1}`)
}
