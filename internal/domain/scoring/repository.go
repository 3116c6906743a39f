package scoring

import "context"

// ConfigRepository persists the point-value singleton.
type ConfigRepository interface {
	Get(ctx context.Context) (Config, bool, error)
	Save(ctx context.Context, cfg Config) error
}

// ScoreRepository persists computed breakdowns keyed by prediction id.
type ScoreRepository interface {
	UpsertByPrediction(ctx context.Context, score PredictionScore) error
	GetByPrediction(ctx context.Context, predictionID string) (PredictionScore, bool, error)
	// DeleteByPrediction removes a settled breakdown whose prediction can no
	// longer be scored. Deleting an absent row is not an error.
	DeleteByPrediction(ctx context.Context, predictionID string) error
	ListByUser(ctx context.Context, userID string) ([]PredictionScore, error)
	ListByMatch(ctx context.Context, matchID string) ([]PredictionScore, error)
	// ListAll feeds the leaderboard rebuild self-heal.
	ListAll(ctx context.Context) ([]PredictionScore, error)
}
