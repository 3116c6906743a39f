package app

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/usecase"
)

type SchedulerConfig struct {
	LockInterval     time.Duration
	ReminderInterval time.Duration
}

// JobPublisher hands a sweep off to an external queue that calls back into the
// internal job routes. Implemented by jobqueue.QStashPublisher.
type JobPublisher interface {
	EnqueueLockSweep(ctx context.Context, delay time.Duration, dedupID string) error
	EnqueueReminderSweep(ctx context.Context, delay time.Duration, dedupID string) error
}

// Scheduler drives the periodic jobs. With no publisher the sweeps run
// in-process; with one, each tick publishes a queue message that calls back
// into the internal job routes, so the sweeps still fire when the API runs
// behind a scale-to-zero deployment. Both paths call the identical service
// methods and stay idempotent.
type Scheduler struct {
	lockSvc     *usecase.LockService
	reminderSvc *usecase.ReminderService
	publisher   JobPublisher
	logger      *logging.Logger
	cfg         SchedulerConfig
}

func NewScheduler(
	lockSvc *usecase.LockService,
	reminderSvc *usecase.ReminderService,
	publisher JobPublisher,
	logger *logging.Logger,
	cfg SchedulerConfig,
) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LockInterval <= 0 {
		cfg.LockInterval = 2 * time.Minute
	}
	if cfg.ReminderInterval <= 0 {
		cfg.ReminderInterval = time.Hour
	}
	return &Scheduler{
		lockSvc:     lockSvc,
		reminderSvc: reminderSvc,
		publisher:   publisher,
		logger:      logger,
		cfg:         cfg,
	}
}

// Run blocks until ctx is cancelled, ticking both sweeps on their own
// intervals. The first lock sweep fires immediately so a restart cannot leave
// overdue predictions unlocked for a full interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduler starting",
		"lock_interval", s.cfg.LockInterval.String(),
		"reminder_interval", s.cfg.ReminderInterval.String(),
	)

	var wg conc.WaitGroup
	wg.Go(func() { s.runLockLoop(ctx) })
	wg.Go(func() { s.runReminderLoop(ctx) })
	wg.Wait()

	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runLockLoop(ctx context.Context) {
	s.tickLock(ctx)

	ticker := time.NewTicker(s.cfg.LockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickLock(ctx)
		}
	}
}

func (s *Scheduler) runReminderLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ReminderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickReminders(ctx)
		}
	}
}

func (s *Scheduler) tickLock(ctx context.Context) {
	if s.publisher != nil {
		if err := s.publisher.EnqueueLockSweep(ctx, 0, sweepDedupID("lock-sweep", s.cfg.LockInterval)); err != nil {
			s.logger.ErrorContext(ctx, "enqueue lock sweep failed", "error", err)
		}
		return
	}

	outcome, err := s.lockSvc.LockDuePredictions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "lock sweep failed", "error", err)
		return
	}
	if outcome.MatchesDue > 0 || outcome.PredictionsLocked > 0 || outcome.MatchesWentLive > 0 {
		s.logger.InfoContext(ctx, "lock sweep finished",
			"matches_due", outcome.MatchesDue,
			"predictions_locked", outcome.PredictionsLocked,
			"matches_went_live", outcome.MatchesWentLive,
		)
	}
}

func (s *Scheduler) tickReminders(ctx context.Context) {
	if s.publisher != nil {
		if err := s.publisher.EnqueueReminderSweep(ctx, 0, sweepDedupID("reminder-sweep", s.cfg.ReminderInterval)); err != nil {
			s.logger.ErrorContext(ctx, "enqueue reminder sweep failed", "error", err)
		}
		return
	}

	if _, err := s.reminderSvc.SendUpcomingReminders(ctx); err != nil {
		s.logger.ErrorContext(ctx, "reminder sweep failed", "error", err)
	}
}

// sweepDedupID buckets the current time by the sweep interval so overlapping
// publishes from restarts or concurrent replicas collapse into one delivery.
// QStash deduplication ids must not contain colons.
func sweepDedupID(job string, interval time.Duration) string {
	bucket := time.Now().UTC().Truncate(interval)
	return job + "-" + bucket.Format("20060102T150405Z")
}
