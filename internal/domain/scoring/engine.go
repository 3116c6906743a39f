package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
)

// Calculate converts one (prediction, result, config) triple into a point
// breakdown. Pure and deterministic: no I/O, no clock, no randomness.
//
// Winner and exact-score are mutually exclusive. Free-text categories match
// after normalization; numeric categories need a non-nil exact match. The
// perfect bonus requires the exact score plus every one of the six other
// categories scoring above zero.
func Calculate(pred prediction.Prediction, res result.Result, cfg Config) Breakdown {
	b := Breakdown{}

	actualWinner := result.ComputeWinner(res.HomeScore, res.AwayScore)
	predictedWinner := result.ComputeWinner(pred.HomeScore, pred.AwayScore)
	exact := pred.HomeScore == res.HomeScore && pred.AwayScore == res.AwayScore

	switch {
	case exact:
		b.ExactScore = cfg.ExactScore
	case predictedWinner == actualWinner:
		b.Winner = cfg.Winner
	}

	if textMatches(pred.TopScorer, res.TopScorer) {
		b.TopScorer = cfg.TopScorer
	}
	if textMatches(pred.FirstScorer, res.FirstScorer) {
		b.FirstScorer = cfg.FirstScorer
	}
	if textMatches(pred.MVP, res.MVP) {
		b.MVP = cfg.MVP
	}
	if textMatches(pred.MostPasses, res.MostPasses) {
		b.MostPasses = cfg.MostPasses
	}
	if countMatches(pred.YellowCards, res.YellowCards) {
		b.YellowCards = cfg.YellowCards
	}
	if countMatches(pred.RedCards, res.RedCards) {
		b.RedCards = cfg.RedCards
	}

	subtotal := b.Winner + b.ExactScore + b.TopScorer + b.FirstScorer +
		b.MVP + b.YellowCards + b.RedCards + b.MostPasses

	if exact &&
		b.TopScorer > 0 && b.FirstScorer > 0 && b.MVP > 0 &&
		b.YellowCards > 0 && b.RedCards > 0 && b.MostPasses > 0 {
		b.PerfectBonus = cfg.PerfectBonus
	}

	b.Total = subtotal + b.PerfectBonus
	return b
}

// Normalize prepares a free-text category value for comparison: trim,
// lowercase, strip diacritics. "José" and " jose " normalize identically.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func textMatches(predicted, actual string) bool {
	p := Normalize(predicted)
	a := Normalize(actual)
	return p != "" && a != "" && p == a
}

func countMatches(predicted, actual *int) bool {
	return predicted != nil && actual != nil && *predicted == *actual
}
