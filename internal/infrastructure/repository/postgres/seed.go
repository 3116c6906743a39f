package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the tournament schedule into an empty database. A
// populated teams table means the instance is already provisioned and the
// seed is skipped entirely, so this is safe to run on every startup.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, code, group_letter, is_placeholder)
VALUES (:public_id, :name, :code, :group_letter, :is_placeholder)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      t.ID,
			"name":           t.Name,
			"code":           t.Code,
			"group_letter":   t.GroupLetter,
			"is_placeholder": t.IsPlaceholder,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, match_number, phase, group_letter, matchday,
	home_team_public_id, away_team_public_id, home_slot, away_slot,
	venue, kickoff_at, lock_at, status, predictable)
VALUES (:public_id, :match_number, :phase, :group_letter, :matchday,
	:home_team_public_id, :away_team_public_id, :home_slot, :away_slot,
	:venue, :kickoff_at, :lock_at, :status, :predictable)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"match_number":        m.Number,
			"phase":               m.Phase,
			"group_letter":        m.GroupLetter,
			"matchday":            m.Matchday,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"home_slot":           m.HomeSlot,
			"away_slot":           m.AwaySlot,
			"venue":               m.Venue,
			"kickoff_at":          m.KickoffAt.Unix(),
			"lock_at":             m.LockAt.Unix(),
			"status":              m.Status,
			"predictable":         m.Predictable,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	groups, memberships := memory.SeedFriendGroups()
	for _, g := range groups {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO friend_groups (public_id, name, invite_code, owner_user_id, is_active, created_at)
VALUES (:public_id, :name, :invite_code, :owner_user_id, :is_active, :created_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":     g.ID,
			"name":          g.Name,
			"invite_code":   g.InviteCode,
			"owner_user_id": g.OwnerID,
			"is_active":     g.IsActive,
			"created_at":    g.CreatedAt.Unix(),
		})
		if err != nil {
			return fmt.Errorf("bind seed friend group %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed friend group %s: %w", g.ID, err)
		}
	}
	for _, m := range memberships {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO friend_group_members (group_public_id, user_id, group_points, rank, joined_at)
VALUES (:group_public_id, :user_id, :group_points, :rank, :joined_at)
ON CONFLICT (group_public_id, user_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"group_public_id": m.GroupID,
			"user_id":         m.UserID,
			"group_points":    m.GroupPoints,
			"rank":            m.Rank,
			"joined_at":       m.JoinedAt.Unix(),
		})
		if err != nil {
			return fmt.Errorf("bind seed friend group member %s query: %w", m.UserID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed friend group member %s: %w", m.UserID, err)
		}
	}

	// A fresh database needs the point-value singleton before the first
	// result ingestion; operators can tune it later through Save.
	defaults := scoring.DefaultConfig()
	sqlQuery, args, err := sqlx.Named(`
INSERT INTO scoring_configs (singleton_key, winner_points, exact_score_points,
	top_scorer_points, first_scorer_points, mvp_points, yellow_cards_points,
	red_cards_points, most_passes_points, perfect_bonus_points, updated_by, updated_at)
VALUES (:singleton_key, :winner_points, :exact_score_points,
	:top_scorer_points, :first_scorer_points, :mvp_points, :yellow_cards_points,
	:red_cards_points, :most_passes_points, :perfect_bonus_points, :updated_by, :updated_at)
ON CONFLICT (singleton_key) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
		"singleton_key":        scoringConfigKey,
		"winner_points":        defaults.Winner,
		"exact_score_points":   defaults.ExactScore,
		"top_scorer_points":    defaults.TopScorer,
		"first_scorer_points":  defaults.FirstScorer,
		"mvp_points":           defaults.MVP,
		"yellow_cards_points":  defaults.YellowCards,
		"red_cards_points":     defaults.RedCards,
		"most_passes_points":   defaults.MostPasses,
		"perfect_bonus_points": defaults.PerfectBonus,
		"updated_by":           "bootstrap",
		"updated_at":           time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("bind seed scoring config query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("seed scoring config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
