package prediction

import (
	"time"

	"github.com/golazozone/prediction-league/internal/domain/result"
)

// Prediction is one user's forecast for one match, unique per (user, match).
// Optional categories are opt-in point opportunities: a nil card count or an
// empty name simply scores zero. LockedAt is a one-way latch written only by
// the lock scheduler; a locked prediction must never be mutated again.
type Prediction struct {
	ID          string
	UserID      string
	MatchID     string
	HomeScore   int
	AwayScore   int
	Winner      result.Winner
	TopScorer   string
	FirstScorer string
	MVP         string
	MostPasses  string
	YellowCards *int
	RedCards    *int
	LockedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Prediction) IsLocked() bool {
	return p.LockedAt != nil
}
