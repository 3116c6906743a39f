package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/team"
	basecache "github.com/golazozone/prediction-league/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// MatchRepository caches the read path of the schedule. Writes (finishing a
// match, the lock sweep transitions) invalidate the match keyspace so the
// next read reflects the new status.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) MarkFinished(ctx context.Context, matchID string, finishedAt time.Time) error {
	if err := r.next.MarkFinished(ctx, matchID, finishedAt); err != nil {
		return err
	}
	r.cache.Delete(ctx, "match:list")
	r.cache.Delete(ctx, "match:id:"+matchID)
	return nil
}

func (r *MatchRepository) ListDueForLock(ctx context.Context, now time.Time) ([]match.Match, error) {
	return r.next.ListDueForLock(ctx, now)
}

func (r *MatchRepository) TransitionDueToLive(ctx context.Context, now time.Time) (int, error) {
	changed, err := r.next.TransitionDueToLive(ctx, now)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		r.cache.DeletePrefix(ctx, "match:")
	}
	return changed, nil
}

func (r *MatchRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	return r.next.ListScheduledBetween(ctx, from, to)
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

// LeaderboardRepository caches the top-N read, the hottest endpoint during a
// matchday. Any write drops the cached pages: ranks shift globally on every
// ingestion so per-row invalidation buys nothing.
type LeaderboardRepository struct {
	next  leaderboard.Repository
	cache *basecache.Store
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, cache: cache}
}

func (r *LeaderboardRepository) Get(ctx context.Context, userID string) (leaderboard.Entry, bool, error) {
	return r.next.Get(ctx, userID)
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	return r.next.List(ctx)
}

func (r *LeaderboardRepository) ListTop(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	key := leaderboardTopKey(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListTop(ctx, limit)
		if err != nil {
			return nil, err
		}
		return append([]leaderboard.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]leaderboard.Entry)
	return append([]leaderboard.Entry(nil), items...), nil
}

func (r *LeaderboardRepository) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	if err := r.next.Upsert(ctx, entry); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leaderboardTopPrefix)
	return nil
}

func (r *LeaderboardRepository) ReplaceRanks(ctx context.Context, entries []leaderboard.Entry) error {
	if err := r.next.ReplaceRanks(ctx, entries); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leaderboardTopPrefix)
	return nil
}

const leaderboardTopPrefix = "leaderboard:top:"

func leaderboardTopKey(limit int) string {
	return leaderboardTopPrefix + strconv.Itoa(limit)
}

type ScoringConfigRepository struct {
	next  scoring.ConfigRepository
	cache *basecache.Store
}

func NewScoringConfigRepository(next scoring.ConfigRepository, cache *basecache.Store) *ScoringConfigRepository {
	return &ScoringConfigRepository{next: next, cache: cache}
}

func (r *ScoringConfigRepository) Get(ctx context.Context) (scoring.Config, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "scoring-config:current", func(ctx context.Context) (any, error) {
		cfg, exists, err := r.next.Get(ctx)
		if err != nil {
			return nil, err
		}
		return cachedScoringConfig{value: cfg, exists: exists}, nil
	})
	if err != nil {
		return scoring.Config{}, false, err
	}

	cached, _ := v.(cachedScoringConfig)
	return cached.value, cached.exists, nil
}

func (r *ScoringConfigRepository) Save(ctx context.Context, cfg scoring.Config) error {
	if err := r.next.Save(ctx, cfg); err != nil {
		return err
	}
	r.cache.Delete(ctx, "scoring-config:current")
	return nil
}

type cachedScoringConfig struct {
	value  scoring.Config
	exists bool
}

type FriendGroupRepository struct {
	next  friendgroup.Repository
	cache *basecache.Store
}

func NewFriendGroupRepository(next friendgroup.Repository, cache *basecache.Store) *FriendGroupRepository {
	return &FriendGroupRepository{next: next, cache: cache}
}

func (r *FriendGroupRepository) GetGroup(ctx context.Context, groupID string) (friendgroup.Group, bool, error) {
	key := "friend-group:id:" + groupID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		group, exists, err := r.next.GetGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedFriendGroup{value: group, exists: exists}, nil
	})
	if err != nil {
		return friendgroup.Group{}, false, err
	}

	cached, _ := v.(cachedFriendGroup)
	return cached.value, cached.exists, nil
}

func (r *FriendGroupRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]friendgroup.Membership, error) {
	return r.next.ListMembershipsByUser(ctx, userID)
}

func (r *FriendGroupRepository) ListMembershipsByGroup(ctx context.Context, groupID string) ([]friendgroup.Membership, error) {
	key := "friend-group:members:" + groupID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembershipsByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return append([]friendgroup.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]friendgroup.Membership)
	return append([]friendgroup.Membership(nil), items...), nil
}

func (r *FriendGroupRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	if err := r.next.AddPoints(ctx, userID, delta); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "friend-group:members:")
	return nil
}

func (r *FriendGroupRepository) UpdateStandings(ctx context.Context, groupID string, standings []friendgroup.Membership) error {
	if err := r.next.UpdateStandings(ctx, groupID, standings); err != nil {
		return err
	}
	r.cache.Delete(ctx, "friend-group:members:"+groupID)
	return nil
}

type cachedFriendGroup struct {
	value  friendgroup.Group
	exists bool
}
