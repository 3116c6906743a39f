package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/match"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchToDomain(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchToDomain(row), true, nil
}

func (r *MatchRepository) MarkFinished(ctx context.Context, matchID string, finishedAt time.Time) error {
	query, args, err := qb.Update("matches").
		Set("status", match.StatusFinished).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark match finished query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark match finished: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListDueForLock(ctx context.Context, now time.Time) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Expr("lock_at <= ?", now.Unix()),
			qb.In("status", []any{match.StatusScheduled, match.StatusLive}),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches due for lock query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches due for lock: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchToDomain(row))
	}
	return out, nil
}

// TransitionDueToLive flips SCHEDULED matches whose lock instant has passed.
// The lock instant, not kickoff, is the state boundary: a locked match is
// already in play for prediction purposes.
func (r *MatchRepository) TransitionDueToLive(ctx context.Context, now time.Time) (int, error) {
	query, args, err := qb.Update("matches").
		Set("status", match.StatusLive).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("status", match.StatusScheduled),
			qb.Expr("lock_at <= ?", now.Unix()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build transition matches to live query: %w", err)
	}

	result, err := ext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("transition matches to live: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count matches transitioned to live: %w", err)
	}
	return int(affected), nil
}

func (r *MatchRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("status", match.StatusScheduled),
			qb.Expr("kickoff_at > ?", from.Unix()),
			qb.Expr("kickoff_at <= ?", to.Unix()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scheduled matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scheduled matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchToDomain(row))
	}
	return out, nil
}

func matchToDomain(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.PublicID,
		Number:      row.Number,
		Phase:       row.Phase,
		GroupLetter: row.GroupLetter,
		Matchday:    row.Matchday,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		HomeSlot:    row.HomeSlot,
		AwaySlot:    row.AwaySlot,
		Venue:       row.Venue,
		KickoffAt:   unixToTime(row.KickoffAt),
		LockAt:      unixToTime(row.LockAt),
		Status:      row.Status,
		Predictable: row.Predictable,
	}
}
