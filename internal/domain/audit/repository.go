package audit

import "context"

type Repository interface {
	Record(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
