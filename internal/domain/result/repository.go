package result

import "context"

type Repository interface {
	// Upsert creates or fully overwrites the result for its match.
	// Re-ingesting a corrected result is a supported operation.
	Upsert(ctx context.Context, item Result) error
	GetByMatch(ctx context.Context, matchID string) (Result, bool, error)
}
