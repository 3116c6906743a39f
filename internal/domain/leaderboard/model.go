package leaderboard

import "time"

// Entry is the denormalized per-user running summary. It is a materialized
// cache of the sum of prediction-score rows for finished matches, never an
// independent source of truth. Rank is always a full re-derivation over the
// whole population.
type Entry struct {
	UserID         string
	DisplayName    string
	TotalPoints    int
	MatchesPlayed  int
	ExactScores    int
	CorrectWinners int
	Accuracy       float64
	Rank           int
	JoinedAt       time.Time
	UpdatedAt      time.Time
}

// RecomputeAccuracy derives the accuracy percentage from the counters.
func (e *Entry) RecomputeAccuracy() {
	if e.MatchesPlayed <= 0 {
		e.Accuracy = 0
		return
	}
	e.Accuracy = float64(e.CorrectWinners) / float64(e.MatchesPlayed) * 100
}
