package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

type FriendGroupRepository struct {
	db *sqlx.DB
}

func NewFriendGroupRepository(db *sqlx.DB) *FriendGroupRepository {
	return &FriendGroupRepository{db: db}
}

func (r *FriendGroupRepository) GetGroup(ctx context.Context, groupID string) (friendgroup.Group, bool, error) {
	query, args, err := qb.Select("*").From("friend_groups").
		Where(
			qb.Eq("public_id", groupID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return friendgroup.Group{}, false, fmt.Errorf("build get friend group query: %w", err)
	}

	var row friendGroupTableModel
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return friendgroup.Group{}, false, nil
		}
		return friendgroup.Group{}, false, fmt.Errorf("get friend group: %w", err)
	}

	return friendgroup.Group{
		ID:         row.PublicID,
		Name:       row.Name,
		InviteCode: row.InviteCode,
		OwnerID:    row.OwnerUserID,
		IsActive:   row.IsActive,
		CreatedAt:  unixToTime(row.CreatedAt),
	}, true, nil
}

func (r *FriendGroupRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]friendgroup.Membership, error) {
	return r.listMemberships(ctx, qb.Eq("user_id", userID))
}

func (r *FriendGroupRepository) ListMembershipsByGroup(ctx context.Context, groupID string) ([]friendgroup.Membership, error) {
	return r.listMemberships(ctx, qb.Eq("group_public_id", groupID))
}

func (r *FriendGroupRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	query, args, err := qb.Update("friend_group_members").
		SetExpr("group_points", "group_points + ?", delta).
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add group points query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add group points: %w", err)
	}
	return nil
}

func (r *FriendGroupRepository) UpdateStandings(ctx context.Context, groupID string, standings []friendgroup.Membership) error {
	return runAtomic(ctx, r.db, func(ctx context.Context) error {
		for _, member := range standings {
			insertModel := friendGroupMemberInsertModel{
				GroupID:     groupID,
				UserID:      member.UserID,
				GroupPoints: member.GroupPoints,
				Rank:        member.Rank,
				JoinedAt:    timeToUnix(member.JoinedAt),
			}
			query, args, err := qb.InsertModel("friend_group_members", insertModel, `ON CONFLICT (group_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    group_points = EXCLUDED.group_points,
    rank = EXCLUDED.rank,
    deleted_at = NULL`)
			if err != nil {
				return fmt.Errorf("build upsert group member query user=%s: %w", member.UserID, err)
			}
			if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert group member user=%s: %w", member.UserID, err)
			}
		}
		return nil
	})
}

func (r *FriendGroupRepository) listMemberships(ctx context.Context, condition qb.Condition) ([]friendgroup.Membership, error) {
	query, args, err := qb.Select("*").From("friend_group_members").
		Where(
			condition,
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list group memberships query: %w", err)
	}

	var rows []friendGroupMemberTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list group memberships: %w", err)
	}

	out := make([]friendgroup.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, friendgroup.Membership{
			GroupID:     row.GroupID,
			UserID:      row.UserID,
			GroupPoints: row.GroupPoints,
			Rank:        row.Rank,
			JoinedAt:    unixToTime(row.JoinedAt),
		})
	}
	return out, nil
}
