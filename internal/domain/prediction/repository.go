package prediction

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert creates or revises the prediction keyed by (user, match) and
	// returns the stored row. ID and CreatedAt of an existing row survive
	// the revision.
	Upsert(ctx context.Context, item Prediction) (Prediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Prediction, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	// LockByMatchIDs stamps lockedAt on every unlocked prediction belonging
	// to the given matches in one bulk write and returns how many rows
	// changed. Already-locked rows are excluded by the selection predicate,
	// which is what makes repeated sweeps no-ops.
	LockByMatchIDs(ctx context.Context, matchIDs []string, lockedAt time.Time) (int, error)
	// ListUserIDsByMatch returns the distinct users who predicted a match.
	ListUserIDsByMatch(ctx context.Context, matchID string) ([]string, error)
}
