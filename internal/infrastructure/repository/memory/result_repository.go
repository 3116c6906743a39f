package memory

import (
	"context"
	"sync"

	"github.com/golazozone/prediction-league/internal/domain/result"
)

type ResultRepository struct {
	mu      sync.RWMutex
	byMatch map[string]result.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{byMatch: make(map[string]result.Result)}
}

func (r *ResultRepository) Upsert(_ context.Context, item result.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[item.MatchID] = item
	return nil
}

func (r *ResultRepository) GetByMatch(_ context.Context, matchID string) (result.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byMatch[matchID]
	return item, ok, nil
}
