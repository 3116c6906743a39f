package friendgroup

import "context"

type Repository interface {
	GetGroup(ctx context.Context, groupID string) (Group, bool, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
	ListMembershipsByGroup(ctx context.Context, groupID string) ([]Membership, error)
	// AddPoints applies one delta to every membership row of the user.
	AddPoints(ctx context.Context, userID string, delta int) error
	// UpdateStandings replaces the ranked membership rows for one group.
	UpdateStandings(ctx context.Context, groupID string, standings []Membership) error
}
