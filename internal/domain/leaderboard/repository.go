package leaderboard

import "context"

type Repository interface {
	Get(ctx context.Context, userID string) (Entry, bool, error)
	List(ctx context.Context) ([]Entry, error)
	ListTop(ctx context.Context, limit int) ([]Entry, error)
	Upsert(ctx context.Context, entry Entry) error
	// ReplaceRanks persists the rank column for every given entry. Callers
	// pass the full population so no row keeps a stale rank.
	ReplaceRanks(ctx context.Context, entries []Entry) error
}
