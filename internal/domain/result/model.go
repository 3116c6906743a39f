package result

import "time"

type Winner string

const (
	WinnerHome Winner = "HOME"
	WinnerAway Winner = "AWAY"
	WinnerDraw Winner = "DRAW"
)

// ComputeWinner is the single derivation of the coarse outcome indicator.
// The stored winner column must always agree with this function applied to
// the stored scores.
func ComputeWinner(homeScore, awayScore int) Winner {
	switch {
	case homeScore > awayScore:
		return WinnerHome
	case awayScore > homeScore:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// Result is the single official outcome for a match, one-to-one with it.
// Card totals and free-text categories are optional: an absent value means
// the category cannot be scored for this match.
type Result struct {
	MatchID     string
	HomeScore   int
	AwayScore   int
	Winner      Winner
	TopScorer   string
	FirstScorer string
	MVP         string
	MostPasses  string
	YellowCards *int
	RedCards    *int
	RecordedBy  string
	RecordedAt  time.Time
}
