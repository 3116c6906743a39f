package postgres

import "time"

type friendGroupTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	InviteCode  string     `db:"invite_code"`
	OwnerUserID string     `db:"owner_user_id"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   int64      `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type friendGroupMemberTableModel struct {
	ID          int64      `db:"id"`
	GroupID     string     `db:"group_public_id"`
	UserID      string     `db:"user_id"`
	GroupPoints int        `db:"group_points"`
	Rank        int        `db:"rank"`
	JoinedAt    int64      `db:"joined_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type friendGroupMemberInsertModel struct {
	GroupID     string `db:"group_public_id"`
	UserID      string `db:"user_id"`
	GroupPoints int    `db:"group_points"`
	Rank        int    `db:"rank"`
	JoinedAt    int64  `db:"joined_at"`
}
