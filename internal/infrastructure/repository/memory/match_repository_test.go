package memory

import (
	"context"
	"testing"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/match"
)

func TestMatchRepository_TransitionDueToLive_UsesLockInstant(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 11, 19, 50, 0, 0, time.UTC)
	graceKickoff := now.Add(10 * time.Minute) // lock instant already passed
	openKickoff := now.Add(2 * time.Hour)

	repo := NewMatchRepository([]match.Match{
		{
			ID: "m-grace", Number: 1, Status: match.StatusScheduled,
			KickoffAt: graceKickoff, LockAt: match.LockInstant(graceKickoff),
		},
		{
			ID: "m-open", Number: 2, Status: match.StatusScheduled,
			KickoffAt: openKickoff, LockAt: match.LockInstant(openKickoff),
		},
		{
			ID: "m-finished", Number: 3, Status: match.StatusFinished,
			KickoffAt: now.Add(-3 * time.Hour), LockAt: match.LockInstant(now.Add(-3 * time.Hour)),
		},
	})

	changed, err := repo.TransitionDueToLive(context.Background(), now)
	if err != nil {
		t.Fatalf("TransitionDueToLive error: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 transition, got %d", changed)
	}

	grace, _, _ := repo.GetByID(context.Background(), "m-grace")
	if grace.Status != match.StatusLive {
		t.Fatalf("match past its lock instant must be LIVE before kickoff, got %s", grace.Status)
	}
	open, _, _ := repo.GetByID(context.Background(), "m-open")
	if open.Status != match.StatusScheduled {
		t.Fatalf("match before its lock instant must stay SCHEDULED, got %s", open.Status)
	}
	finished, _, _ := repo.GetByID(context.Background(), "m-finished")
	if finished.Status != match.StatusFinished {
		t.Fatalf("finished match must not transition, got %s", finished.Status)
	}
}
