package friendgroup

import "time"

// Group is a private sub-ranking among a user-defined subset of players.
type Group struct {
	ID         string
	Name       string
	InviteCode string
	OwnerID    string
	IsActive   bool
	CreatedAt  time.Time
}

// Membership carries the running group-points sum for one member. Group
// points mirror the member's ingestion deltas and are independent of the
// global rank.
type Membership struct {
	GroupID     string
	UserID      string
	GroupPoints int
	Rank        int
	JoinedAt    time.Time
}
