package footballdata

// Raw response shapes for the football-data.org v4 API.

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64       `json:"id"`
	UTCDate     string      `json:"utcDate"`
	Status      string      `json:"status"` // SCHEDULED, IN_PLAY, FINISHED, ...
	Competition competition `json:"competition"`
	HomeTeam    teamRef     `json:"homeTeam"`
	AwayTeam    teamRef     `json:"awayTeam"`
	Score       matchScore  `json:"score"`
}

type competition struct {
	Name   string `json:"name"`
	Emblem string `json:"emblem"`
}

type teamRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

type matchScore struct {
	FullTime scorePair `json:"fullTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
