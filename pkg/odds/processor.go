// Package odds transforms raw bookmaker quotes into the unified processed
// odds shape: best price per selection across all bookmakers, grouped by
// canonical market.
package odds

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Quote is one raw odds quote from a provider, tagged with the bookmaker's
// market description and selection label.
type Quote struct {
	Bookmaker string  `json:"bookmaker"`
	Market    string  `json:"market"`
	Selection string  `json:"selection"`
	Handicap  float64 `json:"handicap,omitempty"`
	Price     float64 `json:"price"`
}

// ThreeWay holds best prices for a home/draw/away market. A price of 0 means
// no bookmaker quoted that selection; 0 is an "unavailable" sentinel, never a
// real price, and must not be divided by without a guard.
type ThreeWay struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// YesNo holds best prices for a yes/no market.
type YesNo struct {
	Yes float64 `json:"yes"`
	No  float64 `json:"no"`
}

// TotalGoals holds best over/under prices at the standard goal lines.
type TotalGoals struct {
	Over15  float64 `json:"over15"`
	Under15 float64 `json:"under15"`
	Over25  float64 `json:"over25"`
	Under25 float64 `json:"under25"`
	Over35  float64 `json:"over35"`
	Under35 float64 `json:"under35"`
}

// ScorePrice is a correct-score selection with its best price.
type ScorePrice struct {
	Score string  `json:"score"`
	Odd   float64 `json:"odd"`
}

// HandicapPrice is an Asian handicap line with best prices per side.
type HandicapPrice struct {
	Handicap float64 `json:"handicap"`
	Home     float64 `json:"home"`
	Away     float64 `json:"away"`
}

// ProcessedOdds is the per-fixture unified odds shape.
type ProcessedOdds struct {
	FullTimeResult   ThreeWay        `json:"fullTimeResult"`
	BothTeamsToScore YesNo           `json:"bothTeamsToScore"`
	TotalGoals       TotalGoals      `json:"totalGoals"`
	CorrectScore     []ScorePrice    `json:"correctScore"`
	AsianHandicap    []HandicapPrice `json:"asianHandicap"`
}

const (
	maxCorrectScores = 10
	maxHandicapLines = 5
)

// market canonicalization. Bookmakers label the same market many ways; the
// lookup maps the common aliases onto one canonical market id.
type marketKind int

const (
	marketUnknown marketKind = iota
	marketFullTime
	marketBTTS
	marketTotalGoals
	marketCorrectScore
	marketAsianHandicap
)

var marketAliases = map[string]marketKind{
	"match winner":        marketFullTime,
	"full time result":    marketFullTime,
	"match result":        marketFullTime,
	"1x2":                 marketFullTime,
	"fulltime result":     marketFullTime,
	"both teams to score": marketBTTS,
	"both teams score":    marketBTTS,
	"btts":                marketBTTS,
	"goals over/under":    marketTotalGoals,
	"over/under":          marketTotalGoals,
	"over under":          marketTotalGoals,
	"total goals":         marketTotalGoals,
	"total - goals":       marketTotalGoals,
	"correct score":       marketCorrectScore,
	"exact score":         marketCorrectScore,
	"asian handicap":      marketAsianHandicap,
	"handicap":            marketAsianHandicap,
}

func canonicalMarket(market string) marketKind {
	return marketAliases[strings.ToLower(strings.TrimSpace(market))]
}

// BestOdds groups quotes by canonical market and keeps the maximum quoted
// decimal price per selection across all bookmakers (best for the bettor).
// Selections nobody quotes stay at the 0 sentinel.
func BestOdds(quotes []Quote) ProcessedOdds {
	var processed ProcessedOdds

	scorePrices := make(map[string]float64)
	handicaps := make(map[float64]*HandicapPrice)

	for _, q := range quotes {
		if q.Price <= 0 || math.IsNaN(q.Price) {
			continue
		}

		selection := strings.ToLower(strings.TrimSpace(q.Selection))

		switch canonicalMarket(q.Market) {
		case marketFullTime:
			switch selection {
			case "home", "1":
				processed.FullTimeResult.Home = max(processed.FullTimeResult.Home, q.Price)
			case "draw", "x":
				processed.FullTimeResult.Draw = max(processed.FullTimeResult.Draw, q.Price)
			case "away", "2":
				processed.FullTimeResult.Away = max(processed.FullTimeResult.Away, q.Price)
			}

		case marketBTTS:
			switch selection {
			case "yes":
				processed.BothTeamsToScore.Yes = max(processed.BothTeamsToScore.Yes, q.Price)
			case "no":
				processed.BothTeamsToScore.No = max(processed.BothTeamsToScore.No, q.Price)
			}

		case marketTotalGoals:
			over, line, ok := parseTotalSelection(selection)
			if !ok {
				continue
			}
			switch {
			case line == 1.5 && over:
				processed.TotalGoals.Over15 = max(processed.TotalGoals.Over15, q.Price)
			case line == 1.5:
				processed.TotalGoals.Under15 = max(processed.TotalGoals.Under15, q.Price)
			case line == 2.5 && over:
				processed.TotalGoals.Over25 = max(processed.TotalGoals.Over25, q.Price)
			case line == 2.5:
				processed.TotalGoals.Under25 = max(processed.TotalGoals.Under25, q.Price)
			case line == 3.5 && over:
				processed.TotalGoals.Over35 = max(processed.TotalGoals.Over35, q.Price)
			case line == 3.5:
				processed.TotalGoals.Under35 = max(processed.TotalGoals.Under35, q.Price)
			}

		case marketCorrectScore:
			score := normalizeScore(q.Selection)
			if score == "" {
				continue
			}
			scorePrices[score] = max(scorePrices[score], q.Price)

		case marketAsianHandicap:
			side, line, ok := parseHandicapSelection(selection, q.Handicap)
			if !ok {
				continue
			}
			hp := handicaps[line]
			if hp == nil {
				hp = &HandicapPrice{Handicap: line}
				handicaps[line] = hp
			}
			if side == "home" {
				hp.Home = max(hp.Home, q.Price)
			} else {
				hp.Away = max(hp.Away, q.Price)
			}
		}
	}

	processed.CorrectScore = topScores(scorePrices, maxCorrectScores)
	processed.AsianHandicap = topHandicaps(handicaps, maxHandicapLines)

	return processed
}

// ImpliedProbability converts a decimal price into its implied probability
// (1/price). A deterministic arithmetic transform, not a model. Returns 0 for
// the 0 "unavailable" sentinel and any other non-positive input.
func ImpliedProbability(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return 1 / price
}

// ImpliedProbabilities converts a full-time-result group selection by
// selection.
func ImpliedProbabilities(result ThreeWay) ThreeWay {
	return ThreeWay{
		Home: ImpliedProbability(result.Home),
		Draw: ImpliedProbability(result.Draw),
		Away: ImpliedProbability(result.Away),
	}
}

// parseTotalSelection parses labels like "over 2.5" / "under 1.5".
func parseTotalSelection(selection string) (over bool, line float64, ok bool) {
	fields := strings.Fields(selection)
	if len(fields) != 2 {
		return false, 0, false
	}

	switch fields[0] {
	case "over":
		over = true
	case "under":
		over = false
	default:
		return false, 0, false
	}

	line, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return false, 0, false
	}
	return over, line, true
}

// parseHandicapSelection parses labels like "home -1.5" / "away +0.25". When
// the label carries no line the quote's Handicap field is used.
func parseHandicapSelection(selection string, quoted float64) (side string, line float64, ok bool) {
	fields := strings.Fields(selection)
	if len(fields) == 0 {
		return "", 0, false
	}

	switch fields[0] {
	case "home", "away":
		side = fields[0]
	default:
		return "", 0, false
	}

	if len(fields) >= 2 {
		parsed, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "", 0, false
		}
		return side, parsed, true
	}
	return side, quoted, true
}

// normalizeScore canonicalizes "2-1" / "2:1" style labels to "2:1".
func normalizeScore(selection string) string {
	s := strings.TrimSpace(strings.ReplaceAll(selection, "-", ":"))
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ""
	}
	home := strings.TrimSpace(parts[0])
	away := strings.TrimSpace(parts[1])
	if home == "" || away == "" {
		return ""
	}
	if _, err := strconv.Atoi(home); err != nil {
		return ""
	}
	if _, err := strconv.Atoi(away); err != nil {
		return ""
	}
	return home + ":" + away
}

// topScores returns the n shortest-priced correct-score selections, shortest
// first. Ties break on the score label for determinism.
func topScores(prices map[string]float64, n int) []ScorePrice {
	scores := make([]ScorePrice, 0, len(prices))
	for score, price := range prices {
		scores = append(scores, ScorePrice{Score: score, Odd: price})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Odd != scores[j].Odd {
			return scores[i].Odd < scores[j].Odd
		}
		return scores[i].Score < scores[j].Score
	})

	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// topHandicaps returns up to n lines, closest to level first.
func topHandicaps(handicaps map[float64]*HandicapPrice, n int) []HandicapPrice {
	lines := make([]HandicapPrice, 0, len(handicaps))
	for _, hp := range handicaps {
		lines = append(lines, *hp)
	}

	sort.Slice(lines, func(i, j int) bool {
		ai, aj := math.Abs(lines[i].Handicap), math.Abs(lines[j].Handicap)
		if ai != aj {
			return ai < aj
		}
		return lines[i].Handicap < lines[j].Handicap
	})

	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
