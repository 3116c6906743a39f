package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golazozone/prediction-league/internal/platform/logging"
)

type stubJobPublisher struct {
	lockDedups     []string
	reminderDedups []string
	err            error
}

func (s *stubJobPublisher) EnqueueLockSweep(_ context.Context, _ time.Duration, dedupID string) error {
	s.lockDedups = append(s.lockDedups, dedupID)
	return s.err
}

func (s *stubJobPublisher) EnqueueReminderSweep(_ context.Context, _ time.Duration, dedupID string) error {
	s.reminderDedups = append(s.reminderDedups, dedupID)
	return s.err
}

func TestScheduler_TickLock_PublishesInsteadOfSweepingWhenQueueConfigured(t *testing.T) {
	t.Parallel()

	publisher := &stubJobPublisher{}
	s := NewScheduler(nil, nil, publisher, logging.NewNop(), SchedulerConfig{
		LockInterval:     2 * time.Minute,
		ReminderInterval: time.Hour,
	})

	s.tickLock(context.Background())
	s.tickReminders(context.Background())

	if len(publisher.lockDedups) != 1 {
		t.Fatalf("expected one lock publish, got %d", len(publisher.lockDedups))
	}
	if len(publisher.reminderDedups) != 1 {
		t.Fatalf("expected one reminder publish, got %d", len(publisher.reminderDedups))
	}
	if !strings.HasPrefix(publisher.lockDedups[0], "lock-sweep-") {
		t.Fatalf("unexpected lock dedup id: %s", publisher.lockDedups[0])
	}
}

func TestSweepDedupID_StableWithinIntervalBucket(t *testing.T) {
	t.Parallel()

	first := sweepDedupID("lock-sweep", 24*time.Hour)
	second := sweepDedupID("lock-sweep", 24*time.Hour)

	if first != second {
		t.Fatalf("dedup ids within the same bucket must match: %s vs %s", first, second)
	}
	if strings.Contains(first, ":") {
		t.Fatalf("dedup id must not contain a colon: %s", first)
	}
}
