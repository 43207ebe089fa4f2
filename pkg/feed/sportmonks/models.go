package sportmonks

// Raw response shapes for the SportMonks Football v3 API.

type fixturesEnvelope struct {
	Data []fixtureItem `json:"data"`
}

type fixtureItem struct {
	ID           int64         `json:"id"`
	StartingAt   string        `json:"starting_at"` // "2026-08-30 14:00:00" UTC
	State        fixtureState  `json:"state"`
	League       leagueRef     `json:"league"`
	Participants []participant `json:"participants"`
	Scores       []scoreEntry  `json:"scores"`
}

type fixtureState struct {
	ShortName string `json:"short_name"` // NS, INPLAY_1ST_HALF, FT, POSTP, ...
}

type leagueRef struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_path"`
}

type participant struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_path"`
	Meta     participantMeta `json:"meta"`
}

type participantMeta struct {
	Location string `json:"location"` // "home" or "away"
}

type scoreEntry struct {
	Description string     `json:"description"` // "CURRENT", "1ST_HALF", ...
	Score       scoreValue `json:"score"`
}

type scoreValue struct {
	Goals       int    `json:"goals"`
	Participant string `json:"participant"` // "home" or "away"
}

type oddsEnvelope struct {
	Data []oddsEntry `json:"data"`
}

type oddsEntry struct {
	Bookmaker   bookmakerRef `json:"bookmaker"`
	MarketName  string       `json:"market_description"`
	Label       string       `json:"label"` // selection, e.g. "Home", "Over"
	Value       string       `json:"value"` // decimal price as string
	Total       string       `json:"total"` // goal line for totals markets
	Handicap    string       `json:"handicap"`
	DisplayName string       `json:"name"` // e.g. "2-1" for correct score
}

type bookmakerRef struct {
	Name string `json:"name"`
}
