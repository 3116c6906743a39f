package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	UserID      string        `db:"user_id"`
	MatchID     string        `db:"match_public_id"`
	HomeScore   int           `db:"home_score"`
	AwayScore   int           `db:"away_score"`
	Winner      string        `db:"winner"`
	TopScorer   string        `db:"top_scorer"`
	FirstScorer string        `db:"first_scorer"`
	MVP         string        `db:"mvp"`
	MostPasses  string        `db:"most_passes"`
	YellowCards sql.NullInt64 `db:"yellow_cards"`
	RedCards    sql.NullInt64 `db:"red_cards"`
	LockedAt    sql.NullInt64 `db:"locked_at"`
	CreatedAt   int64         `db:"created_at"`
	UpdatedAt   int64         `db:"updated_at"`
	DeletedAt   *time.Time    `db:"deleted_at"`
}

type predictionInsertModel struct {
	PublicID    string        `db:"public_id"`
	UserID      string        `db:"user_id"`
	MatchID     string        `db:"match_public_id"`
	HomeScore   int           `db:"home_score"`
	AwayScore   int           `db:"away_score"`
	Winner      string        `db:"winner"`
	TopScorer   string        `db:"top_scorer"`
	FirstScorer string        `db:"first_scorer"`
	MVP         string        `db:"mvp"`
	MostPasses  string        `db:"most_passes"`
	YellowCards sql.NullInt64 `db:"yellow_cards"`
	RedCards    sql.NullInt64 `db:"red_cards"`
	LockedAt    sql.NullInt64 `db:"locked_at"`
	CreatedAt   int64         `db:"created_at"`
	UpdatedAt   int64         `db:"updated_at"`
}
