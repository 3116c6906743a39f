package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/result"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) error {
	insertModel := resultInsertModel{
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
		RecordedBy:  item.RecordedBy,
		RecordedAt:  timeToUnix(item.RecordedAt),
	}
	query, args, err := qb.InsertModel("results", insertModel, `ON CONFLICT (match_public_id) WHERE deleted_at IS NULL
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
    recorded_by = EXCLUDED.recorded_by,
    recorded_at = EXCLUDED.recorded_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) GetByMatch(ctx context.Context, matchID string) (result.Result, bool, error) {
	query, args, err := qb.Select("*").From("results").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row resultTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("get result: %w", err)
	}

	return result.Result{
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
		RecordedBy:  row.RecordedBy,
		RecordedAt:  unixToTime(row.RecordedAt),
	}, true, nil
}
