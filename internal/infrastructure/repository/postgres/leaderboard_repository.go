package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) Get(ctx context.Context, userID string) (leaderboard.Entry, bool, error) {
	query, args, err := qb.Select("*").From("leaderboard_entries").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("build get leaderboard entry query: %w", err)
	}

	var row leaderboardEntryTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaderboard.Entry{}, false, nil
		}
		return leaderboard.Entry{}, false, fmt.Errorf("get leaderboard entry: %w", err)
	}
	return leaderboardEntryToDomain(row), true, nil
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select("*").From("leaderboard_entries").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard entries query: %w", err)
	}

	var rows []leaderboardEntryTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard entries: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardEntryToDomain(row))
	}
	return out, nil
}

func (r *LeaderboardRepository) ListTop(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select("*").From("leaderboard_entries").
		Where(
			qb.Expr("rank > ?", 0),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list top leaderboard entries query: %w", err)
	}

	var rows []leaderboardEntryTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list top leaderboard entries: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardEntryToDomain(row))
	}
	return out, nil
}

func (r *LeaderboardRepository) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	insertModel := leaderboardEntryInsertModel{
		UserID:         entry.UserID,
		DisplayName:    entry.DisplayName,
		TotalPoints:    entry.TotalPoints,
		MatchesPlayed:  entry.MatchesPlayed,
		ExactScores:    entry.ExactScores,
		CorrectWinners: entry.CorrectWinners,
		Accuracy:       entry.Accuracy,
		Rank:           entry.Rank,
		JoinedAt:       timeToUnix(entry.JoinedAt),
		UpdatedAt:      timeToUnix(entry.UpdatedAt),
	}
	query, args, err := qb.InsertModel("leaderboard_entries", insertModel, `ON CONFLICT (user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    total_points = EXCLUDED.total_points,
    matches_played = EXCLUDED.matches_played,
    exact_scores = EXCLUDED.exact_scores,
    correct_winners = EXCLUDED.correct_winners,
    accuracy = EXCLUDED.accuracy,
    rank = EXCLUDED.rank,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert leaderboard entry query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) ReplaceRanks(ctx context.Context, entries []leaderboard.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return runAtomic(ctx, r.db, func(ctx context.Context) error {
		for _, entry := range entries {
			query, args, err := qb.Update("leaderboard_entries").
				Set("rank", entry.Rank).
				Where(
					qb.Eq("user_id", entry.UserID),
					qb.IsNull("deleted_at"),
				).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build replace rank query user=%s: %w", entry.UserID, err)
			}
			if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("replace rank user=%s: %w", entry.UserID, err)
			}
		}
		return nil
	})
}

func leaderboardEntryToDomain(row leaderboardEntryTableModel) leaderboard.Entry {
	return leaderboard.Entry{
		UserID:         row.UserID,
		DisplayName:    row.DisplayName,
		TotalPoints:    row.TotalPoints,
		MatchesPlayed:  row.MatchesPlayed,
		ExactScores:    row.ExactScores,
		CorrectWinners: row.CorrectWinners,
		Accuracy:       row.Accuracy,
		Rank:           row.Rank,
		JoinedAt:       unixToTime(row.JoinedAt),
		UpdatedAt:      unixToTime(row.UpdatedAt),
	}
}
