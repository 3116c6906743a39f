package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
)

type FriendGroupRepository struct {
	mu          sync.RWMutex
	groups      map[string]friendgroup.Group
	memberships []friendgroup.Membership
}

func NewFriendGroupRepository(groups []friendgroup.Group, memberships []friendgroup.Membership) *FriendGroupRepository {
	byID := make(map[string]friendgroup.Group, len(groups))
	for _, group := range groups {
		byID[group.ID] = group
	}
	return &FriendGroupRepository{groups: byID, memberships: memberships}
}

func (r *FriendGroupRepository) GetGroup(_ context.Context, groupID string) (friendgroup.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[groupID]
	return group, ok, nil
}

func (r *FriendGroupRepository) ListMembershipsByUser(_ context.Context, userID string) ([]friendgroup.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]friendgroup.Membership, 0)
	for _, m := range r.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sortMemberships(out)
	return out, nil
}

func (r *FriendGroupRepository) ListMembershipsByGroup(_ context.Context, groupID string) ([]friendgroup.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]friendgroup.Membership, 0)
	for _, m := range r.memberships {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	sortMemberships(out)
	return out, nil
}

func (r *FriendGroupRepository) AddPoints(_ context.Context, userID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.memberships {
		if r.memberships[i].UserID == userID {
			r.memberships[i].GroupPoints += delta
		}
	}
	return nil
}

func (r *FriendGroupRepository) UpdateStandings(_ context.Context, groupID string, standings []friendgroup.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, updated := range standings {
		for i := range r.memberships {
			if r.memberships[i].GroupID == groupID && r.memberships[i].UserID == updated.UserID {
				r.memberships[i].GroupPoints = updated.GroupPoints
				r.memberships[i].Rank = updated.Rank
			}
		}
	}
	return nil
}

func sortMemberships(items []friendgroup.Membership) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].GroupID != items[j].GroupID {
			return items[i].GroupID < items[j].GroupID
		}
		return items[i].UserID < items[j].UserID
	})
}
