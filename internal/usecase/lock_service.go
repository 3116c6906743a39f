package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/platform/resilience"
)

type LockService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	logger         *logging.Logger
	now            func() time.Time
	tickFlight     resilience.SingleFlight
}

type LockTickOutcome struct {
	MatchesDue        int
	PredictionsLocked int
	MatchesWentLive   int
}

func NewLockService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	logger *logging.Logger,
) *LockService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LockService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// LockDuePredictions stamps the lock flag on every unlocked prediction whose
// match has passed its lock instant, then flips due SCHEDULED matches to
// LIVE. The two writes are independent and each is idempotent, so overlapping
// ticks or a crash between them only delays work to the next run. The flag is
// bookkeeping: submission enforces the cutoff against the wall clock.
func (s *LockService) LockDuePredictions(ctx context.Context) (LockTickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.LockDuePredictions")
	defer span.End()

	value, err, shared := s.tickFlight.Do("lock:tick", func() (any, error) {
		return s.lockDuePredictionsOnce(ctx)
	})
	if err != nil {
		return LockTickOutcome{}, err
	}
	outcome, ok := value.(LockTickOutcome)
	if !ok {
		return LockTickOutcome{}, nil
	}
	if shared {
		s.logger.DebugContext(ctx, "lock tick coalesced with an in-flight run")
	}
	return outcome, nil
}

func (s *LockService) lockDuePredictionsOnce(ctx context.Context) (LockTickOutcome, error) {
	now := s.now().UTC()

	due, err := s.matchRepo.ListDueForLock(ctx, now)
	if err != nil {
		return LockTickOutcome{}, fmt.Errorf("list matches due for lock: %w", err)
	}

	outcome := LockTickOutcome{MatchesDue: len(due)}

	if len(due) > 0 {
		matchIDs := make([]string, 0, len(due))
		for _, m := range due {
			matchIDs = append(matchIDs, m.ID)
		}
		locked, err := s.predictionRepo.LockByMatchIDs(ctx, matchIDs, now)
		if err != nil {
			return LockTickOutcome{}, fmt.Errorf("lock predictions for due matches: %w", err)
		}
		outcome.PredictionsLocked = locked
	}

	wentLive, err := s.matchRepo.TransitionDueToLive(ctx, now)
	if err != nil {
		return LockTickOutcome{}, fmt.Errorf("transition due matches to live: %w", err)
	}
	outcome.MatchesWentLive = wentLive

	if outcome.PredictionsLocked > 0 || outcome.MatchesWentLive > 0 {
		s.logger.InfoContext(ctx, "prediction lock tick applied",
			"matches_due", outcome.MatchesDue,
			"predictions_locked", outcome.PredictionsLocked,
			"matches_went_live", outcome.MatchesWentLive,
		)
	}
	return outcome, nil
}
