package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/platform/logging"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
	rebuildPoolSize         = 8
)

type LeaderboardService struct {
	leaderboardRepo leaderboard.Repository
	scoreRepo       scoring.ScoreRepository
	groupRepo       friendgroup.Repository
	logger          *logging.Logger
	now             func() time.Time
}

type GroupMemberStanding struct {
	UserID      string
	DisplayName string
	GroupPoints int
	Rank        int
}

type GroupStandings struct {
	GroupID   string
	GroupName string
	Members   []GroupMemberStanding
}

func NewLeaderboardService(
	leaderboardRepo leaderboard.Repository,
	scoreRepo scoring.ScoreRepository,
	groupRepo friendgroup.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		scoreRepo:       scoreRepo,
		groupRepo:       groupRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *LeaderboardService) ListTop(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ListTop")
	defer span.End()

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := s.leaderboardRepo.ListTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list top leaderboard entries: %w", err)
	}
	return entries, nil
}

func (s *LeaderboardService) GetEntry(ctx context.Context, userID string) (leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetEntry")
	defer span.End()

	entry, found, err := s.leaderboardRepo.Get(ctx, userID)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("get leaderboard entry: %w", err)
	}
	if !found {
		return leaderboard.Entry{}, fmt.Errorf("%w: leaderboard entry for user %s", ErrNotFound, userID)
	}
	return entry, nil
}

// EnsureEntry creates a zero-valued summary row for the user so they show up
// ranked before any of their matches finish.
func (s *LeaderboardService) EnsureEntry(ctx context.Context, userID, displayName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.EnsureEntry")
	defer span.End()

	_, found, err := s.leaderboardRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get leaderboard entry for ensure: %w", err)
	}
	if found {
		return nil
	}

	now := s.now().UTC()
	if err := s.leaderboardRepo.Upsert(ctx, leaderboard.Entry{
		UserID:      userID,
		DisplayName: displayName,
		JoinedAt:    now,
		UpdatedAt:   now,
	}); err != nil {
		return fmt.Errorf("upsert zero leaderboard entry: %w", err)
	}
	return nil
}

func (s *LeaderboardService) GroupStandings(ctx context.Context, groupID string) (GroupStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GroupStandings")
	defer span.End()

	group, found, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return GroupStandings{}, fmt.Errorf("get friend group: %w", err)
	}
	if !found || !group.IsActive {
		return GroupStandings{}, fmt.Errorf("%w: friend group %s", ErrNotFound, groupID)
	}

	memberships, err := s.groupRepo.ListMembershipsByGroup(ctx, groupID)
	if err != nil {
		return GroupStandings{}, fmt.Errorf("list group memberships: %w", err)
	}

	sort.SliceStable(memberships, func(i, j int) bool {
		if memberships[i].Rank != memberships[j].Rank {
			return memberships[i].Rank < memberships[j].Rank
		}
		return memberships[i].UserID < memberships[j].UserID
	})

	members := make([]GroupMemberStanding, 0, len(memberships))
	for _, member := range memberships {
		displayName := member.UserID
		if entry, ok, err := s.leaderboardRepo.Get(ctx, member.UserID); err == nil && ok && entry.DisplayName != "" {
			displayName = entry.DisplayName
		}
		members = append(members, GroupMemberStanding{
			UserID:      member.UserID,
			DisplayName: displayName,
			GroupPoints: member.GroupPoints,
			Rank:        member.Rank,
		})
	}

	return GroupStandings{
		GroupID:   group.ID,
		GroupName: group.Name,
		Members:   members,
	}, nil
}

// RecomputeGlobalRanks re-derives the rank column for the whole population.
// Ordering is total points descending, then earliest joiner, then user ID, so
// two runs over the same rows always produce the same ranks.
func (s *LeaderboardService) RecomputeGlobalRanks(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecomputeGlobalRanks")
	defer span.End()

	entries, err := s.leaderboardRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list leaderboard entries for rank recompute: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	sortEntriesForRanking(entries)
	for idx := range entries {
		entries[idx].Rank = idx + 1
	}

	if err := s.leaderboardRepo.ReplaceRanks(ctx, entries); err != nil {
		return 0, fmt.Errorf("replace leaderboard ranks: %w", err)
	}
	return len(entries), nil
}

// RecomputeGroupRanks rewrites the standings of the given friend groups.
// Group ranks are dense: members on the same group-points total share a rank.
func (s *LeaderboardService) RecomputeGroupRanks(ctx context.Context, groupIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecomputeGroupRanks")
	defer span.End()

	for _, groupID := range groupIDs {
		memberships, err := s.groupRepo.ListMembershipsByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("list memberships for group rank recompute group=%s: %w", groupID, err)
		}
		if len(memberships) == 0 {
			continue
		}

		sort.SliceStable(memberships, func(i, j int) bool {
			if memberships[i].GroupPoints != memberships[j].GroupPoints {
				return memberships[i].GroupPoints > memberships[j].GroupPoints
			}
			if !memberships[i].JoinedAt.Equal(memberships[j].JoinedAt) {
				return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
			}
			return memberships[i].UserID < memberships[j].UserID
		})

		lastPoints := 0
		rank := 0
		for idx := range memberships {
			if idx == 0 || memberships[idx].GroupPoints != lastPoints {
				rank++
				lastPoints = memberships[idx].GroupPoints
			}
			memberships[idx].Rank = rank
		}

		if err := s.groupRepo.UpdateStandings(ctx, groupID, memberships); err != nil {
			return fmt.Errorf("update standings group=%s: %w", groupID, err)
		}
	}
	return nil
}

// RebuildFromScores recomputes every summary row from the prediction-score
// rows, then re-ranks. It is the self-heal path for a drifted or lost
// leaderboard; display names and join instants survive from the old rows.
func (s *LeaderboardService) RebuildFromScores(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RebuildFromScores")
	defer span.End()

	scores, err := s.scoreRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list prediction scores for rebuild: %w", err)
	}

	existing, err := s.leaderboardRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list leaderboard entries for rebuild: %w", err)
	}
	existingByUser := make(map[string]leaderboard.Entry, len(existing))
	for _, entry := range existing {
		existingByUser[entry.UserID] = entry
	}

	scoresByUser := make(map[string][]scoring.PredictionScore)
	for _, score := range scores {
		scoresByUser[score.UserID] = append(scoresByUser[score.UserID], score)
	}
	for userID := range existingByUser {
		if _, ok := scoresByUser[userID]; !ok {
			scoresByUser[userID] = nil
		}
	}
	if len(scoresByUser) == 0 {
		return 0, nil
	}

	now := s.now().UTC()

	pool, err := ants.NewPool(rebuildPoolSize)
	if err != nil {
		return 0, fmt.Errorf("create rebuild worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for userID, userScores := range scoresByUser {
		userID, userScores := userID, userScores
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			entry := summarizeScores(userID, userScores, existingByUser[userID], now)
			if upsertErr := s.leaderboardRepo.Upsert(ctx, entry); upsertErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("upsert rebuilt entry user=%s: %w", userID, upsertErr)
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return 0, fmt.Errorf("submit rebuild task: %w", submitErr)
		}
	}
	wg.Wait()
	if firstErr != nil {
		return 0, firstErr
	}

	rebuilt := len(scoresByUser)
	if _, err := s.RecomputeGlobalRanks(ctx); err != nil {
		return rebuilt, err
	}

	s.logger.InfoContext(ctx, "leaderboard rebuilt from prediction scores", "entries", rebuilt)
	return rebuilt, nil
}

func summarizeScores(userID string, scores []scoring.PredictionScore, prior leaderboard.Entry, now time.Time) leaderboard.Entry {
	entry := leaderboard.Entry{
		UserID:      userID,
		DisplayName: prior.DisplayName,
		JoinedAt:    prior.JoinedAt,
		UpdatedAt:   now,
	}
	if entry.JoinedAt.IsZero() {
		entry.JoinedAt = now
	}

	for _, score := range scores {
		entry.TotalPoints += score.Breakdown.Total
		entry.MatchesPlayed++
		if score.Breakdown.ExactScore > 0 {
			entry.ExactScores++
		}
		if scoredWinner(score.Breakdown) {
			entry.CorrectWinners++
		}
	}
	entry.RecomputeAccuracy()
	return entry
}

// scoredWinner reports whether the breakdown credits the outcome call. An
// exact score implies a correct winner even though the winner line is zero.
func scoredWinner(bd scoring.Breakdown) bool {
	return bd.Winner > 0 || bd.ExactScore > 0
}

func sortEntriesForRanking(entries []leaderboard.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if !entries[i].JoinedAt.Equal(entries[j].JoinedAt) {
			return entries[i].JoinedAt.Before(entries[j].JoinedAt)
		}
		return entries[i].UserID < entries[j].UserID
	})
}
