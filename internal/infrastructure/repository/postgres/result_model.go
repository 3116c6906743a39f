package postgres

import (
	"database/sql"
	"time"
)

type resultTableModel struct {
	ID          int64         `db:"id"`
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
	RecordedBy  string        `db:"recorded_by"`
	RecordedAt  int64         `db:"recorded_at"`
	DeletedAt   *time.Time    `db:"deleted_at"`
}

type resultInsertModel struct {
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
	RecordedBy  string        `db:"recorded_by"`
	RecordedAt  int64         `db:"recorded_at"`
}
