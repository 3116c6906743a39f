package postgres

import "time"

type leaderboardEntryTableModel struct {
	ID             int64      `db:"id"`
	UserID         string     `db:"user_id"`
	DisplayName    string     `db:"display_name"`
	TotalPoints    int        `db:"total_points"`
	MatchesPlayed  int        `db:"matches_played"`
	ExactScores    int        `db:"exact_scores"`
	CorrectWinners int        `db:"correct_winners"`
	Accuracy       float64    `db:"accuracy"`
	Rank           int        `db:"rank"`
	JoinedAt       int64      `db:"joined_at"`
	UpdatedAt      int64      `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type leaderboardEntryInsertModel struct {
	UserID         string  `db:"user_id"`
	DisplayName    string  `db:"display_name"`
	TotalPoints    int     `db:"total_points"`
	MatchesPlayed  int     `db:"matches_played"`
	ExactScores    int     `db:"exact_scores"`
	CorrectWinners int     `db:"correct_winners"`
	Accuracy       float64 `db:"accuracy"`
	Rank           int     `db:"rank"`
	JoinedAt       int64   `db:"joined_at"`
	UpdatedAt      int64   `db:"updated_at"`
}
