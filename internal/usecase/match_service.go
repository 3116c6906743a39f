package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/team"
)

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	resultRepo result.Repository
}

// MatchView decorates a fixture with its resolved teams and, when settled,
// the official result. Unresolved playoff slots keep the team pointers nil;
// the slot labels on the match describe them.
type MatchView struct {
	Match    match.Match
	HomeTeam *team.Team
	AwayTeam *team.Team
	Result   *result.Result
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	resultRepo result.Repository,
) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		resultRepo: resultRepo,
	}
}

func (s *MatchService) List(ctx context.Context) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams for match catalog: %w", err)
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	out := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		view := MatchView{Match: m}
		if t, ok := teamByID[m.HomeTeamID]; ok {
			home := t
			view.HomeTeam = &home
		}
		if t, ok := teamByID[m.AwayTeamID]; ok {
			away := t
			view.AwayTeam = &away
		}
		if res, ok, err := s.resultRepo.GetByMatch(ctx, m.ID); err != nil {
			return nil, fmt.Errorf("get result for match catalog: %w", err)
		} else if ok {
			view.Result = &res
		}
		out = append(out, view)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Match.KickoffAt.Equal(out[j].Match.KickoffAt) {
			return out[i].Match.KickoffAt.Before(out[j].Match.KickoffAt)
		}
		return out[i].Match.Number < out[j].Match.Number
	})
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchView{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return MatchView{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	view := MatchView{Match: m}
	if m.HomeTeamID != "" {
		if t, ok, err := s.teamRepo.GetByID(ctx, m.HomeTeamID); err != nil {
			return MatchView{}, fmt.Errorf("get home team: %w", err)
		} else if ok {
			home := t
			view.HomeTeam = &home
		}
	}
	if m.AwayTeamID != "" {
		if t, ok, err := s.teamRepo.GetByID(ctx, m.AwayTeamID); err != nil {
			return MatchView{}, fmt.Errorf("get away team: %w", err)
		} else if ok {
			away := t
			view.AwayTeam = &away
		}
	}
	if res, ok, err := s.resultRepo.GetByMatch(ctx, m.ID); err != nil {
		return MatchView{}, fmt.Errorf("get result for match: %w", err)
	} else if ok {
		view.Result = &res
	}
	return view, nil
}
