package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	insertModel := predictionInsertModel{
		PublicID:    item.ID,
		UserID:      item.UserID,
		MatchID:     item.MatchID,
		HomeScore:   item.HomeScore,
		AwayScore:   item.AwayScore,
		Winner:      string(item.Winner),
		TopScorer:   item.TopScorer,
		FirstScorer: item.FirstScorer,
		MVP:         item.MVP,
		MostPasses:  item.MostPasses,
		YellowCards: nullableInt(item.YellowCards),
		RedCards:    nullableInt(item.RedCards),
		LockedAt:    nullableUnix(item.LockedAt),
		CreatedAt:   timeToUnix(item.CreatedAt),
		UpdatedAt:   timeToUnix(item.UpdatedAt),
	}
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (user_id, match_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    winner = EXCLUDED.winner,
    top_scorer = EXCLUDED.top_scorer,
    first_scorer = EXCLUDED.first_scorer,
    mvp = EXCLUDED.mvp,
    most_passes = EXCLUDED.most_passes,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL
RETURNING public_id, created_at`)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("build upsert prediction query: %w", err)
	}

	var (
		publicID  string
		createdAt int64
	)
	if err := ext(ctx, r.db).QueryRowxContext(ctx, query, args...).Scan(&publicID, &createdAt); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	item.ID = publicID
	item.CreatedAt = unixToTime(createdAt)
	return item, nil
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return predictionToDomain(row), true, nil
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by match query: %w", err)
	}

	var rows []predictionTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by match: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionToDomain(row))
	}
	return out, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user query: %w", err)
	}

	var rows []predictionTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionToDomain(row))
	}
	return out, nil
}

func (r *PredictionRepository) LockByMatchIDs(ctx context.Context, matchIDs []string, lockedAt time.Time) (int, error) {
	if len(matchIDs) == 0 {
		return 0, nil
	}
	values := make([]any, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		values = append(values, matchID)
	}

	query, args, err := qb.Update("predictions").
		SetExpr("locked_at", "?", lockedAt.Unix()).
		Where(
			qb.In("match_public_id", values),
			qb.IsNull("locked_at"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build lock predictions query: %w", err)
	}

	result, err := ext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("lock predictions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count locked predictions: %w", err)
	}
	return int(affected), nil
}

func (r *PredictionRepository) ListUserIDsByMatch(ctx context.Context, matchID string) ([]string, error) {
	query, args, err := qb.Select("user_id").From("predictions").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		GroupBy("user_id").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predicted users query: %w", err)
	}

	var userIDs []string
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &userIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list predicted users: %w", err)
	}
	return userIDs, nil
}

func predictionToDomain(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:          row.PublicID,
		UserID:      row.UserID,
		MatchID:     row.MatchID,
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
		Winner:      result.Winner(row.Winner),
		TopScorer:   row.TopScorer,
		FirstScorer: row.FirstScorer,
		MVP:         row.MVP,
		MostPasses:  row.MostPasses,
		YellowCards: nullInt64ToIntPtr(row.YellowCards),
		RedCards:    nullInt64ToIntPtr(row.RedCards),
		LockedAt:    nullUnixToTimePtr(row.LockedAt),
		CreatedAt:   unixToTime(row.CreatedAt),
		UpdatedAt:   unixToTime(row.UpdatedAt),
	}
}
