package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
	}
	return &MatchRepository{matches: byID}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		out = append(out, item)
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) MarkFinished(_ context.Context, matchID string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return nil
	}
	item.Status = match.StatusFinished
	r.matches[matchID] = item
	return nil
}

func (r *MatchRepository) ListDueForLock(_ context.Context, now time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if match.AcceptsLock(item.Status) && !item.LockAt.After(now) {
			out = append(out, item)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) TransitionDueToLive(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for id, item := range r.matches {
		if item.Status == match.StatusScheduled && !item.LockAt.After(now) {
			item.Status = match.StatusLive
			r.matches[id] = item
			changed++
		}
	}
	return changed, nil
}

func (r *MatchRepository) ListScheduledBetween(_ context.Context, from, to time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.Status != match.StatusScheduled {
			continue
		}
		if item.KickoffAt.After(from) && !item.KickoffAt.After(to) {
			out = append(out, item)
		}
	}
	sortMatches(out)
	return out, nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
}
