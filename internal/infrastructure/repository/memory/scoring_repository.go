package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/golazozone/prediction-league/internal/domain/scoring"
)

type ScoringConfigRepository struct {
	mu  sync.RWMutex
	cfg *scoring.Config
}

// NewScoringConfigRepository starts from the default point values so a fresh
// in-memory deployment can ingest results immediately.
func NewScoringConfigRepository() *ScoringConfigRepository {
	cfg := scoring.DefaultConfig()
	return &ScoringConfigRepository{cfg: &cfg}
}

func (r *ScoringConfigRepository) Get(_ context.Context) (scoring.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return scoring.Config{}, false, nil
	}
	return *r.cfg, true, nil
}

func (r *ScoringConfigRepository) Save(_ context.Context, cfg scoring.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = &cfg
	return nil
}

type PredictionScoreRepository struct {
	mu   sync.RWMutex
	rows map[string]scoring.PredictionScore
}

func NewPredictionScoreRepository() *PredictionScoreRepository {
	return &PredictionScoreRepository{rows: make(map[string]scoring.PredictionScore)}
}

func (r *PredictionScoreRepository) UpsertByPrediction(_ context.Context, score scoring.PredictionScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[score.PredictionID] = score
	return nil
}

func (r *PredictionScoreRepository) GetByPrediction(_ context.Context, predictionID string) (scoring.PredictionScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.rows[predictionID]
	return score, ok, nil
}

func (r *PredictionScoreRepository) DeleteByPrediction(_ context.Context, predictionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, predictionID)
	return nil
}

func (r *PredictionScoreRepository) ListByUser(_ context.Context, userID string) ([]scoring.PredictionScore, error) {
	return r.list(func(score scoring.PredictionScore) bool { return score.UserID == userID })
}

func (r *PredictionScoreRepository) ListByMatch(_ context.Context, matchID string) ([]scoring.PredictionScore, error) {
	return r.list(func(score scoring.PredictionScore) bool { return score.MatchID == matchID })
}

func (r *PredictionScoreRepository) ListAll(_ context.Context) ([]scoring.PredictionScore, error) {
	return r.list(func(scoring.PredictionScore) bool { return true })
}

func (r *PredictionScoreRepository) list(keep func(scoring.PredictionScore) bool) ([]scoring.PredictionScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PredictionScore, 0)
	for _, score := range r.rows {
		if keep(score) {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictionID < out[j].PredictionID })
	return out, nil
}
