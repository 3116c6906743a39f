package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/scoring"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

// The point-value config is a singleton row addressed by a fixed key.
const scoringConfigKey = "default"

type ScoringConfigRepository struct {
	db *sqlx.DB
}

func NewScoringConfigRepository(db *sqlx.DB) *ScoringConfigRepository {
	return &ScoringConfigRepository{db: db}
}

func (r *ScoringConfigRepository) Get(ctx context.Context) (scoring.Config, bool, error) {
	query, args, err := qb.Select("*").From("scoring_configs").
		Where(
			qb.Eq("singleton_key", scoringConfigKey),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scoring.Config{}, false, fmt.Errorf("build get scoring config query: %w", err)
	}

	var row scoringConfigTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Config{}, false, nil
		}
		return scoring.Config{}, false, fmt.Errorf("get scoring config: %w", err)
	}

	return scoring.Config{
		Winner:       row.Winner,
		ExactScore:   row.ExactScore,
		TopScorer:    row.TopScorer,
		FirstScorer:  row.FirstScorer,
		MVP:          row.MVP,
		YellowCards:  row.YellowCards,
		RedCards:     row.RedCards,
		MostPasses:   row.MostPasses,
		PerfectBonus: row.PerfectBonus,
		UpdatedBy:    row.UpdatedBy,
		UpdatedAt:    unixToTime(row.UpdatedAt),
	}, true, nil
}

func (r *ScoringConfigRepository) Save(ctx context.Context, cfg scoring.Config) error {
	insertModel := scoringConfigInsertModel{
		SingletonKey: scoringConfigKey,
		Winner:       cfg.Winner,
		ExactScore:   cfg.ExactScore,
		TopScorer:    cfg.TopScorer,
		FirstScorer:  cfg.FirstScorer,
		MVP:          cfg.MVP,
		YellowCards:  cfg.YellowCards,
		RedCards:     cfg.RedCards,
		MostPasses:   cfg.MostPasses,
		PerfectBonus: cfg.PerfectBonus,
		UpdatedBy:    cfg.UpdatedBy,
		UpdatedAt:    timeToUnix(cfg.UpdatedAt),
	}
	query, args, err := qb.InsertModel("scoring_configs", insertModel, `ON CONFLICT (singleton_key) WHERE deleted_at IS NULL
DO UPDATE SET
    winner_points = EXCLUDED.winner_points,
    exact_score_points = EXCLUDED.exact_score_points,
    top_scorer_points = EXCLUDED.top_scorer_points,
    first_scorer_points = EXCLUDED.first_scorer_points,
    mvp_points = EXCLUDED.mvp_points,
    yellow_cards_points = EXCLUDED.yellow_cards_points,
    red_cards_points = EXCLUDED.red_cards_points,
    most_passes_points = EXCLUDED.most_passes_points,
    perfect_bonus_points = EXCLUDED.perfect_bonus_points,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build save scoring config query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save scoring config: %w", err)
	}
	return nil
}

type PredictionScoreRepository struct {
	db *sqlx.DB
}

func NewPredictionScoreRepository(db *sqlx.DB) *PredictionScoreRepository {
	return &PredictionScoreRepository{db: db}
}

func (r *PredictionScoreRepository) UpsertByPrediction(ctx context.Context, score scoring.PredictionScore) error {
	insertModel := predictionScoreInsertModel{
		PredictionID: score.PredictionID,
		UserID:       score.UserID,
		MatchID:      score.MatchID,
		Winner:       score.Breakdown.Winner,
		ExactScore:   score.Breakdown.ExactScore,
		TopScorer:    score.Breakdown.TopScorer,
		FirstScorer:  score.Breakdown.FirstScorer,
		MVP:          score.Breakdown.MVP,
		YellowCards:  score.Breakdown.YellowCards,
		RedCards:     score.Breakdown.RedCards,
		MostPasses:   score.Breakdown.MostPasses,
		PerfectBonus: score.Breakdown.PerfectBonus,
		Total:        score.Breakdown.Total,
		CalculatedAt: timeToUnix(score.CalculatedAt),
	}
	query, args, err := qb.InsertModel("prediction_scores", insertModel, `ON CONFLICT (prediction_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    winner_points = EXCLUDED.winner_points,
    exact_score_points = EXCLUDED.exact_score_points,
    top_scorer_points = EXCLUDED.top_scorer_points,
    first_scorer_points = EXCLUDED.first_scorer_points,
    mvp_points = EXCLUDED.mvp_points,
    yellow_cards_points = EXCLUDED.yellow_cards_points,
    red_cards_points = EXCLUDED.red_cards_points,
    most_passes_points = EXCLUDED.most_passes_points,
    perfect_bonus_points = EXCLUDED.perfect_bonus_points,
    total_points = EXCLUDED.total_points,
    calculated_at = EXCLUDED.calculated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert prediction score query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction score: %w", err)
	}
	return nil
}

func (r *PredictionScoreRepository) GetByPrediction(ctx context.Context, predictionID string) (scoring.PredictionScore, bool, error) {
	query, args, err := qb.Select("*").From("prediction_scores").
		Where(
			qb.Eq("prediction_public_id", predictionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return scoring.PredictionScore{}, false, fmt.Errorf("build get prediction score query: %w", err)
	}

	var row predictionScoreTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.PredictionScore{}, false, nil
		}
		return scoring.PredictionScore{}, false, fmt.Errorf("get prediction score: %w", err)
	}
	return predictionScoreToDomain(row), true, nil
}

func (r *PredictionScoreRepository) DeleteByPrediction(ctx context.Context, predictionID string) error {
	query, args, err := qb.Update("prediction_scores").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("prediction_public_id", predictionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete prediction score query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete prediction score: %w", err)
	}
	return nil
}

func (r *PredictionScoreRepository) ListByUser(ctx context.Context, userID string) ([]scoring.PredictionScore, error) {
	return r.list(ctx, qb.Eq("user_id", userID))
}

func (r *PredictionScoreRepository) ListByMatch(ctx context.Context, matchID string) ([]scoring.PredictionScore, error) {
	return r.list(ctx, qb.Eq("match_public_id", matchID))
}

func (r *PredictionScoreRepository) ListAll(ctx context.Context) ([]scoring.PredictionScore, error) {
	return r.list(ctx)
}

func (r *PredictionScoreRepository) list(ctx context.Context, conditions ...qb.Condition) ([]scoring.PredictionScore, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("prediction_scores").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list prediction scores query: %w", err)
	}

	var rows []predictionScoreTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list prediction scores: %w", err)
	}

	out := make([]scoring.PredictionScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionScoreToDomain(row))
	}
	return out, nil
}

func predictionScoreToDomain(row predictionScoreTableModel) scoring.PredictionScore {
	return scoring.PredictionScore{
		PredictionID: row.PredictionID,
		UserID:       row.UserID,
		MatchID:      row.MatchID,
		Breakdown: scoring.Breakdown{
			Winner:       row.Winner,
			ExactScore:   row.ExactScore,
			TopScorer:    row.TopScorer,
			FirstScorer:  row.FirstScorer,
			MVP:          row.MVP,
			YellowCards:  row.YellowCards,
			RedCards:     row.RedCards,
			MostPasses:   row.MostPasses,
			PerfectBonus: row.PerfectBonus,
			Total:        row.Total,
		},
		CalculatedAt: unixToTime(row.CalculatedAt),
	}
}
