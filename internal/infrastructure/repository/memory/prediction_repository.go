package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/prediction"
)

type PredictionRepository struct {
	mu   sync.RWMutex
	rows map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{rows: make(map[string]prediction.Prediction)}
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.rows {
		if existing.UserID == item.UserID && existing.MatchID == item.MatchID {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			r.rows[id] = item
			return item, nil
		}
	}
	r.rows[item.ID] = item
	return item, nil
}

func (r *PredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.rows {
		if item.UserID == userID && item.MatchID == matchID {
			return item, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.rows {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.rows {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) LockByMatchIDs(_ context.Context, matchIDs []string, lockedAt time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]struct{}, len(matchIDs))
	for _, matchID := range matchIDs {
		wanted[matchID] = struct{}{}
	}

	locked := 0
	for id, item := range r.rows {
		if _, ok := wanted[item.MatchID]; !ok || item.LockedAt != nil {
			continue
		}
		at := lockedAt
		item.LockedAt = &at
		r.rows[id] = item
		locked++
	}
	return locked, nil
}

func (r *PredictionRepository) ListUserIDsByMatch(_ context.Context, matchID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range r.rows {
		if item.MatchID != matchID {
			continue
		}
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		out = append(out, item.UserID)
	}
	sort.Strings(out)
	return out, nil
}

func sortPredictions(items []prediction.Prediction) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
