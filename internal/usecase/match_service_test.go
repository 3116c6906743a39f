package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/team"
)

func TestMatchService_List_ResolvesTeamsAndResults(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.June, 11, 20, 0, 0, 0, time.UTC)
	matchRepo := &stubMatchRepository{
		byID: map[string]match.Match{
			"m2": {
				ID: "m2", Number: 2, Phase: match.PhaseGroupStage,
				HomeTeamID: "t-can", AwayTeamID: "t-unresolved",
				HomeSlot: "", AwaySlot: "Winner Playoff A",
				KickoffAt: kickoff.Add(3 * time.Hour), Status: match.StatusScheduled,
			},
			"m1": {
				ID: "m1", Number: 1, Phase: match.PhaseGroupStage,
				HomeTeamID: "t-mex", AwayTeamID: "t-can",
				KickoffAt: kickoff, Status: match.StatusFinished,
			},
		},
	}
	teamRepo := &stubTeamRepository{
		byID: map[string]team.Team{
			"t-mex": {ID: "t-mex", Name: "Mexico", Code: "MEX", GroupLetter: "A"},
			"t-can": {ID: "t-can", Name: "Canada", Code: "CAN", GroupLetter: "B"},
		},
	}
	resultRepo := &stubResultRepository{}
	_ = resultRepo.Upsert(context.Background(), result.Result{MatchID: "m1", HomeScore: 2, AwayScore: 0, Winner: result.WinnerHome})

	service := NewMatchService(matchRepo, teamRepo, resultRepo)

	views, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	// Kickoff ordering.
	if views[0].Match.ID != "m1" || views[1].Match.ID != "m2" {
		t.Fatalf("unexpected order: %s, %s", views[0].Match.ID, views[1].Match.ID)
	}
	if views[0].HomeTeam == nil || views[0].HomeTeam.Name != "Mexico" {
		t.Fatalf("unexpected home team: %+v", views[0].HomeTeam)
	}
	if views[0].Result == nil || views[0].Result.Winner != result.WinnerHome {
		t.Fatalf("missing result on finished match: %+v", views[0].Result)
	}

	// Unresolved playoff slot: no team, the slot label carries the display.
	if views[1].AwayTeam != nil || views[1].Match.AwaySlot != "Winner Playoff A" {
		t.Fatalf("unexpected unresolved slot handling: %+v", views[1])
	}
	if views[1].Result != nil {
		t.Fatalf("unexpected result on scheduled match")
	}
}

func TestMatchService_Get(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.June, 11, 20, 0, 0, 0, time.UTC)
	matchRepo := &stubMatchRepository{
		byID: map[string]match.Match{
			"m1": {ID: "m1", Number: 1, HomeTeamID: "t-mex", AwayTeamID: "t-can", KickoffAt: kickoff},
		},
	}
	teamRepo := &stubTeamRepository{
		byID: map[string]team.Team{
			"t-mex": {ID: "t-mex", Name: "Mexico"},
			"t-can": {ID: "t-can", Name: "Canada"},
		},
	}
	service := NewMatchService(matchRepo, teamRepo, &stubResultRepository{})

	view, err := service.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if view.HomeTeam == nil || view.AwayTeam == nil || view.Result != nil {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := service.Get(context.Background(), "m404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
