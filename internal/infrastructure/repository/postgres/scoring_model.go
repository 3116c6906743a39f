package postgres

import "time"

type scoringConfigTableModel struct {
	ID           int64      `db:"id"`
	SingletonKey string     `db:"singleton_key"`
	Winner       int        `db:"winner_points"`
	ExactScore   int        `db:"exact_score_points"`
	TopScorer    int        `db:"top_scorer_points"`
	FirstScorer  int        `db:"first_scorer_points"`
	MVP          int        `db:"mvp_points"`
	YellowCards  int        `db:"yellow_cards_points"`
	RedCards     int        `db:"red_cards_points"`
	MostPasses   int        `db:"most_passes_points"`
	PerfectBonus int        `db:"perfect_bonus_points"`
	UpdatedBy    string     `db:"updated_by"`
	UpdatedAt    int64      `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type scoringConfigInsertModel struct {
	SingletonKey string `db:"singleton_key"`
	Winner       int    `db:"winner_points"`
	ExactScore   int    `db:"exact_score_points"`
	TopScorer    int    `db:"top_scorer_points"`
	FirstScorer  int    `db:"first_scorer_points"`
	MVP          int    `db:"mvp_points"`
	YellowCards  int    `db:"yellow_cards_points"`
	RedCards     int    `db:"red_cards_points"`
	MostPasses   int    `db:"most_passes_points"`
	PerfectBonus int    `db:"perfect_bonus_points"`
	UpdatedBy    string `db:"updated_by"`
	UpdatedAt    int64  `db:"updated_at"`
}

type predictionScoreTableModel struct {
	ID           int64      `db:"id"`
	PredictionID string     `db:"prediction_public_id"`
	UserID       string     `db:"user_id"`
	MatchID      string     `db:"match_public_id"`
	Winner       int        `db:"winner_points"`
	ExactScore   int        `db:"exact_score_points"`
	TopScorer    int        `db:"top_scorer_points"`
	FirstScorer  int        `db:"first_scorer_points"`
	MVP          int        `db:"mvp_points"`
	YellowCards  int        `db:"yellow_cards_points"`
	RedCards     int        `db:"red_cards_points"`
	MostPasses   int        `db:"most_passes_points"`
	PerfectBonus int        `db:"perfect_bonus_points"`
	Total        int        `db:"total_points"`
	CalculatedAt int64      `db:"calculated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type predictionScoreInsertModel struct {
	PredictionID string `db:"prediction_public_id"`
	UserID       string `db:"user_id"`
	MatchID      string `db:"match_public_id"`
	Winner       int    `db:"winner_points"`
	ExactScore   int    `db:"exact_score_points"`
	TopScorer    int    `db:"top_scorer_points"`
	FirstScorer  int    `db:"first_scorer_points"`
	MVP          int    `db:"mvp_points"`
	YellowCards  int    `db:"yellow_cards_points"`
	RedCards     int    `db:"red_cards_points"`
	MostPasses   int    `db:"most_passes_points"`
	PerfectBonus int    `db:"perfect_bonus_points"`
	Total        int    `db:"total_points"`
	CalculatedAt int64  `db:"calculated_at"`
}
