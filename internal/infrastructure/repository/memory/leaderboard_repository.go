package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu     sync.RWMutex
	byUser map[string]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{byUser: make(map[string]leaderboard.Entry)}
}

func (r *LeaderboardRepository) Get(_ context.Context, userID string) (leaderboard.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byUser[userID]
	return entry, ok, nil
}

func (r *LeaderboardRepository) List(_ context.Context) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaderboard.Entry, 0, len(r.byUser))
	for _, entry := range r.byUser {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *LeaderboardRepository) ListTop(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ranked := make([]leaderboard.Entry, 0, len(r.byUser))
	for _, entry := range r.byUser {
		if entry.Rank > 0 {
			ranked = append(ranked, entry)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (r *LeaderboardRepository) Upsert(_ context.Context, entry leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[entry.UserID] = entry
	return nil
}

func (r *LeaderboardRepository) ReplaceRanks(_ context.Context, entries []leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		current, ok := r.byUser[entry.UserID]
		if !ok {
			r.byUser[entry.UserID] = entry
			continue
		}
		current.Rank = entry.Rank
		current.UpdatedAt = entry.UpdatedAt
		r.byUser[entry.UserID] = current
	}
	return nil
}
