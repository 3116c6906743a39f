package postgres

import "time"

type matchTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Number      int        `db:"match_number"`
	Phase       string     `db:"phase"`
	GroupLetter string     `db:"group_letter"`
	Matchday    int        `db:"matchday"`
	HomeTeamID  string     `db:"home_team_public_id"`
	AwayTeamID  string     `db:"away_team_public_id"`
	HomeSlot    string     `db:"home_slot"`
	AwaySlot    string     `db:"away_slot"`
	Venue       string     `db:"venue"`
	KickoffAt   int64      `db:"kickoff_at"`
	LockAt      int64      `db:"lock_at"`
	Status      string     `db:"status"`
	Predictable bool       `db:"predictable"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
