package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/platform/logging"
)

const reminderPoolSize = 8

// Notifier delivers a pre-kickoff nudge to one user. Implementations decide
// the channel; the service only cares about per-recipient success.
type Notifier interface {
	SendMatchReminder(ctx context.Context, userID string, m match.Match) error
}

type noopNotifier struct{}

func (noopNotifier) SendMatchReminder(context.Context, string, match.Match) error { return nil }

// NewNoopNotifier is used when no notification gateway is configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

type ReminderService struct {
	matchRepo       match.Repository
	predictionRepo  prediction.Repository
	leaderboardRepo leaderboard.Repository
	notifier        Notifier
	logger          *logging.Logger
	now             func() time.Time
	lead            time.Duration
	window          time.Duration
}

type ReminderOutcome struct {
	MatchesFound  int
	RemindersSent int
	Failures      int
}

func NewReminderService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	leaderboardRepo leaderboard.Repository,
	notifier Notifier,
	logger *logging.Logger,
	lead, window time.Duration,
) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	if lead <= 0 {
		lead = 2 * time.Hour
	}
	if window <= 0 {
		window = time.Hour
	}
	return &ReminderService{
		matchRepo:       matchRepo,
		predictionRepo:  predictionRepo,
		leaderboardRepo: leaderboardRepo,
		notifier:        notifier,
		logger:          logger,
		now:             time.Now,
		lead:            lead,
		window:          window,
	}
}

// SendUpcomingReminders nudges every registered player who has no prediction
// for a match kicking off roughly one lead time from now. Delivery failures
// are logged per recipient and never abort the batch.
func (s *ReminderService) SendUpcomingReminders(ctx context.Context) (ReminderOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.SendUpcomingReminders")
	defer span.End()

	now := s.now().UTC()
	from := now.Add(s.lead - s.window)
	to := now.Add(s.lead)

	matches, err := s.matchRepo.ListScheduledBetween(ctx, from, to)
	if err != nil {
		return ReminderOutcome{}, fmt.Errorf("list matches for reminders: %w", err)
	}
	outcome := ReminderOutcome{MatchesFound: len(matches)}
	if len(matches) == 0 {
		return outcome, nil
	}

	entries, err := s.leaderboardRepo.List(ctx)
	if err != nil {
		return ReminderOutcome{}, fmt.Errorf("list players for reminders: %w", err)
	}
	if len(entries) == 0 {
		return outcome, nil
	}

	pool, err := ants.NewPool(reminderPoolSize)
	if err != nil {
		return ReminderOutcome{}, fmt.Errorf("create reminder worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sent     int
		failures int
	)
	for _, m := range matches {
		predicted, err := s.predictionRepo.ListUserIDsByMatch(ctx, m.ID)
		if err != nil {
			return ReminderOutcome{}, fmt.Errorf("list predicted users match=%s: %w", m.ID, err)
		}
		predictedSet := make(map[string]struct{}, len(predicted))
		for _, userID := range predicted {
			predictedSet[userID] = struct{}{}
		}

		for _, entry := range entries {
			if _, ok := predictedSet[entry.UserID]; ok {
				continue
			}

			m, userID := m, entry.UserID
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()

				if sendErr := s.notifier.SendMatchReminder(ctx, userID, m); sendErr != nil {
					s.logger.WarnContext(ctx, "match reminder delivery failed",
						"user_id", userID,
						"match_id", m.ID,
						"error", sendErr,
					)
					mu.Lock()
					failures++
					mu.Unlock()
					return
				}
				mu.Lock()
				sent++
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
				return ReminderOutcome{}, fmt.Errorf("submit reminder task: %w", submitErr)
			}
		}
	}
	wg.Wait()

	outcome.RemindersSent = sent
	outcome.Failures = failures

	if sent > 0 || failures > 0 {
		s.logger.InfoContext(ctx, "match reminders dispatched",
			"matches_found", outcome.MatchesFound,
			"reminders_sent", sent,
			"failures", failures,
		)
	}
	return outcome, nil
}
