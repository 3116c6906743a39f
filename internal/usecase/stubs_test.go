package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/audit"
	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/team"
)

type stubMatchRepository struct {
	mu       sync.Mutex
	byID     map[string]match.Match
	finished []string
}

func (s *stubMatchRepository) List(_ context.Context) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Match, 0, len(s.byID))
	for _, m := range s.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubMatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[matchID]
	return m, ok, nil
}

func (s *stubMatchRepository) MarkFinished(_ context.Context, matchID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	if m.Status != match.StatusFinished {
		m.Status = match.StatusFinished
		s.byID[matchID] = m
		s.finished = append(s.finished, matchID)
	}
	return nil
}

func (s *stubMatchRepository) ListDueForLock(_ context.Context, now time.Time) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range s.byID {
		if match.AcceptsLock(m.Status) && !m.LockAt.After(now) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubMatchRepository) TransitionDueToLive(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for id, m := range s.byID {
		if m.Status == match.StatusScheduled && !m.LockAt.After(now) {
			m.Status = match.StatusLive
			s.byID[id] = m
			changed++
		}
	}
	return changed, nil
}

func (s *stubMatchRepository) ListScheduledBetween(_ context.Context, from, to time.Time) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range s.byID {
		if m.Status != match.StatusScheduled {
			continue
		}
		if m.KickoffAt.After(from) && !m.KickoffAt.After(to) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type stubTeamRepository struct {
	byID map[string]team.Team
}

func (s *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	out := make([]team.Team, 0, len(s.byID))
	for _, t := range s.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	t, ok := s.byID[teamID]
	return t, ok, nil
}

type stubPredictionRepository struct {
	mu   sync.Mutex
	byID map[string]prediction.Prediction
}

func (s *stubPredictionRepository) Upsert(_ context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byID == nil {
		s.byID = make(map[string]prediction.Prediction)
	}
	s.byID[item.ID] = item
	return item, nil
}

func (s *stubPredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.byID {
		if item.UserID == userID && item.MatchID == matchID {
			return item, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (s *stubPredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]prediction.Prediction, 0)
	for _, item := range s.byID {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubPredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]prediction.Prediction, 0)
	for _, item := range s.byID {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubPredictionRepository) LockByMatchIDs(_ context.Context, matchIDs []string, lockedAt time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = struct{}{}
	}
	locked := 0
	for id, item := range s.byID {
		if _, ok := wanted[item.MatchID]; !ok || item.LockedAt != nil {
			continue
		}
		at := lockedAt
		item.LockedAt = &at
		s.byID[id] = item
		locked++
	}
	return locked, nil
}

func (s *stubPredictionRepository) ListUserIDsByMatch(_ context.Context, matchID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range s.byID {
		if item.MatchID != matchID {
			continue
		}
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		out = append(out, item.UserID)
	}
	sort.Strings(out)
	return out, nil
}

type stubResultRepository struct {
	mu      sync.Mutex
	byMatch map[string]result.Result
}

func (s *stubResultRepository) Upsert(_ context.Context, item result.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byMatch == nil {
		s.byMatch = make(map[string]result.Result)
	}
	s.byMatch[item.MatchID] = item
	return nil
}

func (s *stubResultRepository) GetByMatch(_ context.Context, matchID string) (result.Result, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byMatch[matchID]
	return res, ok, nil
}

type stubConfigRepository struct {
	mu  sync.Mutex
	cfg *scoring.Config
}

func (s *stubConfigRepository) Get(_ context.Context) (scoring.Config, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return scoring.Config{}, false, nil
	}
	return *s.cfg, true, nil
}

func (s *stubConfigRepository) Save(_ context.Context, cfg scoring.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

type stubScoreRepository struct {
	mu           sync.Mutex
	byPrediction map[string]scoring.PredictionScore
}

func (s *stubScoreRepository) UpsertByPrediction(_ context.Context, score scoring.PredictionScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byPrediction == nil {
		s.byPrediction = make(map[string]scoring.PredictionScore)
	}
	s.byPrediction[score.PredictionID] = score
	return nil
}

func (s *stubScoreRepository) GetByPrediction(_ context.Context, predictionID string) (scoring.PredictionScore, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.byPrediction[predictionID]
	return score, ok, nil
}

func (s *stubScoreRepository) DeleteByPrediction(_ context.Context, predictionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byPrediction, predictionID)
	return nil
}

func (s *stubScoreRepository) ListByUser(_ context.Context, userID string) ([]scoring.PredictionScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scoring.PredictionScore, 0)
	for _, score := range s.byPrediction {
		if score.UserID == userID {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictionID < out[j].PredictionID })
	return out, nil
}

func (s *stubScoreRepository) ListByMatch(_ context.Context, matchID string) ([]scoring.PredictionScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scoring.PredictionScore, 0)
	for _, score := range s.byPrediction {
		if score.MatchID == matchID {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictionID < out[j].PredictionID })
	return out, nil
}

func (s *stubScoreRepository) ListAll(_ context.Context) ([]scoring.PredictionScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scoring.PredictionScore, 0, len(s.byPrediction))
	for _, score := range s.byPrediction {
		out = append(out, score)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictionID < out[j].PredictionID })
	return out, nil
}

type stubLeaderboardRepository struct {
	mu     sync.Mutex
	byUser map[string]leaderboard.Entry
}

func (s *stubLeaderboardRepository) Get(_ context.Context, userID string) (leaderboard.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byUser[userID]
	return entry, ok, nil
}

func (s *stubLeaderboardRepository) List(_ context.Context) ([]leaderboard.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]leaderboard.Entry, 0, len(s.byUser))
	for _, entry := range s.byUser {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *stubLeaderboardRepository) ListTop(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank < entries[j].Rank
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *stubLeaderboardRepository) Upsert(_ context.Context, entry leaderboard.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byUser == nil {
		s.byUser = make(map[string]leaderboard.Entry)
	}
	s.byUser[entry.UserID] = entry
	return nil
}

func (s *stubLeaderboardRepository) ReplaceRanks(_ context.Context, entries []leaderboard.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		stored, ok := s.byUser[entry.UserID]
		if !ok {
			continue
		}
		stored.Rank = entry.Rank
		s.byUser[entry.UserID] = stored
	}
	return nil
}

type stubGroupRepository struct {
	mu          sync.Mutex
	groups      map[string]friendgroup.Group
	memberships []friendgroup.Membership
}

func (s *stubGroupRepository) GetGroup(_ context.Context, groupID string) (friendgroup.Group, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[groupID]
	return group, ok, nil
}

func (s *stubGroupRepository) ListMembershipsByUser(_ context.Context, userID string) ([]friendgroup.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]friendgroup.Membership, 0)
	for _, member := range s.memberships {
		if member.UserID == userID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (s *stubGroupRepository) ListMembershipsByGroup(_ context.Context, groupID string) ([]friendgroup.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]friendgroup.Membership, 0)
	for _, member := range s.memberships {
		if member.GroupID == groupID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (s *stubGroupRepository) AddPoints(_ context.Context, userID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx := range s.memberships {
		if s.memberships[idx].UserID == userID {
			s.memberships[idx].GroupPoints += delta
		}
	}
	return nil
}

func (s *stubGroupRepository) UpdateStandings(_ context.Context, groupID string, standings []friendgroup.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.memberships[:0]
	for _, member := range s.memberships {
		if member.GroupID != groupID {
			kept = append(kept, member)
		}
	}
	s.memberships = append(kept, standings...)
	return nil
}

type stubAuditRepository struct {
	mu        sync.Mutex
	entries   []audit.Entry
	recordErr error
}

func (s *stubAuditRepository) Record(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return s.recordErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAuditRepository) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]audit.Entry(nil), s.entries...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type stubNotifier struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (s *stubNotifier) SendMatchReminder(_ context.Context, userID string, m match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[userID]; ok {
		return err
	}
	s.sent = append(s.sent, userID+":"+m.ID)
	return nil
}

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}
