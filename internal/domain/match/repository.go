package match

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// MarkFinished transitions the match to FINISHED. Already-finished
	// matches are left untouched so result corrections stay idempotent.
	MarkFinished(ctx context.Context, matchID string, finishedAt time.Time) error
	// ListDueForLock returns matches whose lock instant is at or before now
	// and whose status is still SCHEDULED or LIVE.
	ListDueForLock(ctx context.Context, now time.Time) ([]Match, error)
	// TransitionDueToLive flips due SCHEDULED matches to LIVE and returns
	// how many rows changed.
	TransitionDueToLive(ctx context.Context, now time.Time) (int, error)
	// ListScheduledBetween returns SCHEDULED matches kicking off inside
	// (from, to], ordered by match number.
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]Match, error)
}
