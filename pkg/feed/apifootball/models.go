package apifootball

// Raw response envelopes for the API-Football v3 REST API. Fields are typed
// rather than decoded into maps so a provider schema change surfaces as a
// decode error at the normalization boundary.

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureCore `json:"fixture"`
	League  leagueInfo  `json:"league"`
	Teams   teamPair    `json:"teams"`
	Goals   goals       `json:"goals"`
}

type fixtureCore struct {
	ID     int64         `json:"id"`
	Date   string        `json:"date"` // ISO-8601 with offset
	Status fixtureStatus `json:"status"`
}

type fixtureStatus struct {
	Short string `json:"short"` // NS, 1H, HT, FT, PST, ...
}

type leagueInfo struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type teamPair struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type oddsEnvelope struct {
	Response []oddsItem `json:"response"`
}

type oddsItem struct {
	Bookmakers []bookmaker `json:"bookmakers"`
}

type bookmaker struct {
	Name string `json:"name"`
	Bets []bet  `json:"bets"`
}

type bet struct {
	Name   string     `json:"name"`
	Values []betValue `json:"values"`
}

type betValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"` // decimal price quoted as a string
}

type teamEnvelope struct {
	Response []teamWrapper `json:"response"`
}

type teamWrapper struct {
	Team teamInfo `json:"team"`
}
