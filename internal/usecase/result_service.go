package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/audit"
	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/user"
	"github.com/golazozone/prediction-league/internal/platform/id"
	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/platform/resilience"
)

const (
	maxGoals       = 30
	maxYellowCards = 20
	maxRedCards    = 10
	maxNameLength  = 100
)

type ResultService struct {
	matchRepo       match.Repository
	resultRepo      result.Repository
	predictionRepo  prediction.Repository
	configRepo      scoring.ConfigRepository
	scoreRepo       scoring.ScoreRepository
	leaderboardRepo leaderboard.Repository
	groupRepo       friendgroup.Repository
	auditRepo       audit.Repository
	leaderboards    *LeaderboardService
	txRunner        TxRunner
	idGen           id.Generator
	logger          *logging.Logger
	now             func() time.Time
	ingestMu        resilience.KeyedMutex
}

type ResultInput struct {
	MatchID     string
	HomeScore   int
	AwayScore   int
	TopScorer   string
	FirstScorer string
	MVP         string
	MostPasses  string
	YellowCards *int
	RedCards    *int
}

type IngestOutcome struct {
	Result             result.Result
	PredictionsUpdated int
	PredictionsSkipped int
}

func NewResultService(
	matchRepo match.Repository,
	resultRepo result.Repository,
	predictionRepo prediction.Repository,
	configRepo scoring.ConfigRepository,
	scoreRepo scoring.ScoreRepository,
	leaderboardRepo leaderboard.Repository,
	groupRepo friendgroup.Repository,
	auditRepo audit.Repository,
	leaderboards *LeaderboardService,
	txRunner TxRunner,
	idGen id.Generator,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if txRunner == nil {
		txRunner = noopTxRunner{}
	}
	return &ResultService{
		matchRepo:       matchRepo,
		resultRepo:      resultRepo,
		predictionRepo:  predictionRepo,
		configRepo:      configRepo,
		scoreRepo:       scoreRepo,
		leaderboardRepo: leaderboardRepo,
		groupRepo:       groupRepo,
		auditRepo:       auditRepo,
		leaderboards:    leaderboards,
		txRunner:        txRunner,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// IngestResult records the official outcome of one match and settles every
// prediction against it. Calls for the same match are serialized; the
// operation is idempotent because each rescore replaces the prior breakdown
// and leaderboard counters are adjusted by deltas, never re-added. All
// writes run inside one transaction, so a failure partway through leaves
// the previous settled state intact.
func (s *ResultService) IngestResult(ctx context.Context, actor user.Principal, input ResultInput) (IngestOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.IngestResult")
	defer span.End()

	if !actor.IsAdmin() {
		return IngestOutcome{}, fmt.Errorf("%w: result ingestion requires the admin role", ErrForbidden)
	}
	if err := validateResultInput(input); err != nil {
		return IngestOutcome{}, err
	}

	unlock := s.ingestMu.Lock("result:ingest:" + input.MatchID)
	defer unlock()

	m, found, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return IngestOutcome{}, fmt.Errorf("get match for result ingestion: %w", err)
	}
	if !found {
		return IngestOutcome{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}

	// Resolve the scoring config before the first write so a missing config
	// aborts the ingestion with no partial state.
	cfg, cfgFound, err := s.configRepo.Get(ctx)
	if err != nil {
		return IngestOutcome{}, fmt.Errorf("get scoring config for ingestion: %w", err)
	}
	if !cfgFound {
		return IngestOutcome{}, fmt.Errorf("%w: no active scoring config", ErrScoringConfigMissing)
	}

	now := s.now().UTC()
	res := result.Result{
		MatchID:     m.ID,
		HomeScore:   input.HomeScore,
		AwayScore:   input.AwayScore,
		Winner:      result.ComputeWinner(input.HomeScore, input.AwayScore),
		TopScorer:   input.TopScorer,
		FirstScorer: input.FirstScorer,
		MVP:         input.MVP,
		MostPasses:  input.MostPasses,
		YellowCards: input.YellowCards,
		RedCards:    input.RedCards,
		RecordedBy:  actor.UserID,
		RecordedAt:  now,
	}

	updated := 0
	skipped := 0
	if err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.resultRepo.Upsert(ctx, res); err != nil {
			return fmt.Errorf("upsert match result: %w", err)
		}
		if err := s.matchRepo.MarkFinished(ctx, m.ID, now); err != nil {
			return fmt.Errorf("mark match finished: %w", err)
		}

		predictions, err := s.predictionRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("list predictions for rescore: %w", err)
		}

		touchedGroups := make(map[string]struct{})
		for _, pred := range predictions {
			if !predictionScorable(pred) {
				skipped++
				s.logger.WarnContext(ctx, "skipping malformed stored prediction during rescore",
					"prediction_id", pred.ID,
					"user_id", pred.UserID,
					"match_id", pred.MatchID,
				)
				if err := s.reversePriorScore(ctx, pred, touchedGroups, now); err != nil {
					return err
				}
				continue
			}

			prior, hadPrior, err := s.scoreRepo.GetByPrediction(ctx, pred.ID)
			if err != nil {
				return fmt.Errorf("get prior score prediction=%s: %w", pred.ID, err)
			}

			bd := scoring.Calculate(pred, res, cfg)
			if err := s.scoreRepo.UpsertByPrediction(ctx, scoring.PredictionScore{
				PredictionID: pred.ID,
				UserID:       pred.UserID,
				MatchID:      pred.MatchID,
				Breakdown:    bd,
				CalculatedAt: now,
			}); err != nil {
				return fmt.Errorf("upsert prediction score prediction=%s: %w", pred.ID, err)
			}

			delta, err := s.applyLeaderboardDelta(ctx, pred.UserID, bd, prior.Breakdown, hadPrior, now)
			if err != nil {
				return err
			}
			if delta != 0 {
				if err := s.groupRepo.AddPoints(ctx, pred.UserID, delta); err != nil {
					return fmt.Errorf("apply group points delta user=%s: %w", pred.UserID, err)
				}
				memberships, err := s.groupRepo.ListMembershipsByUser(ctx, pred.UserID)
				if err != nil {
					return fmt.Errorf("list memberships for rank recompute user=%s: %w", pred.UserID, err)
				}
				for _, member := range memberships {
					touchedGroups[member.GroupID] = struct{}{}
				}
			}
			updated++
		}

		if _, err := s.leaderboards.RecomputeGlobalRanks(ctx); err != nil {
			return err
		}
		if len(touchedGroups) > 0 {
			groupIDs := make([]string, 0, len(touchedGroups))
			for groupID := range touchedGroups {
				groupIDs = append(groupIDs, groupID)
			}
			if err := s.leaderboards.RecomputeGroupRanks(ctx, groupIDs); err != nil {
				return err
			}
		}

		return s.recordIngestionAudit(ctx, actor.UserID, res, updated, now)
	}); err != nil {
		return IngestOutcome{}, err
	}

	s.logger.InfoContext(ctx, "result ingested",
		"match_id", m.ID,
		"home_score", res.HomeScore,
		"away_score", res.AwayScore,
		"predictions_updated", updated,
		"predictions_skipped", skipped,
	)

	return IngestOutcome{
		Result:             res,
		PredictionsUpdated: updated,
		PredictionsSkipped: skipped,
	}, nil
}

func (s *ResultService) GetByMatch(ctx context.Context, matchID string) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.GetByMatch")
	defer span.End()

	res, found, err := s.resultRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return result.Result{}, fmt.Errorf("get result by match: %w", err)
	}
	if !found {
		return result.Result{}, fmt.Errorf("%w: result for match %s", ErrNotFound, matchID)
	}
	return res, nil
}

func (s *ResultService) applyLeaderboardDelta(
	ctx context.Context,
	userID string,
	next, prior scoring.Breakdown,
	hadPrior bool,
	now time.Time,
) (int, error) {
	entry, found, err := s.leaderboardRepo.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get leaderboard entry user=%s: %w", userID, err)
	}
	if !found {
		entry = leaderboard.Entry{
			UserID:   userID,
			JoinedAt: now,
		}
	}

	delta := next.Total
	if hadPrior {
		delta = next.Total - prior.Total
	}

	entry.TotalPoints += delta
	if !hadPrior {
		entry.MatchesPlayed++
	}
	entry.ExactScores += counterAdjust(next.ExactScore > 0, hadPrior && prior.ExactScore > 0)
	entry.CorrectWinners += counterAdjust(scoredWinner(next), hadPrior && scoredWinner(prior))
	entry.RecomputeAccuracy()
	entry.UpdatedAt = now

	if err := s.leaderboardRepo.Upsert(ctx, entry); err != nil {
		return 0, fmt.Errorf("upsert leaderboard entry user=%s: %w", userID, err)
	}
	return delta, nil
}

// reversePriorScore backs out the settled contribution of a prediction that
// no longer passes validation. Without this, a row skipped on rescore would
// keep the points it earned on an earlier ingestion.
func (s *ResultService) reversePriorScore(
	ctx context.Context,
	pred prediction.Prediction,
	touchedGroups map[string]struct{},
	now time.Time,
) error {
	prior, hadPrior, err := s.scoreRepo.GetByPrediction(ctx, pred.ID)
	if err != nil {
		return fmt.Errorf("get prior score for reversal prediction=%s: %w", pred.ID, err)
	}
	if !hadPrior {
		return nil
	}

	entry, found, err := s.leaderboardRepo.Get(ctx, pred.UserID)
	if err != nil {
		return fmt.Errorf("get leaderboard entry for reversal user=%s: %w", pred.UserID, err)
	}
	if found {
		entry.TotalPoints -= prior.Breakdown.Total
		if entry.MatchesPlayed > 0 {
			entry.MatchesPlayed--
		}
		if prior.Breakdown.ExactScore > 0 && entry.ExactScores > 0 {
			entry.ExactScores--
		}
		if scoredWinner(prior.Breakdown) && entry.CorrectWinners > 0 {
			entry.CorrectWinners--
		}
		entry.RecomputeAccuracy()
		entry.UpdatedAt = now
		if err := s.leaderboardRepo.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("upsert leaderboard entry for reversal user=%s: %w", pred.UserID, err)
		}
	}

	if err := s.scoreRepo.DeleteByPrediction(ctx, pred.ID); err != nil {
		return fmt.Errorf("delete prediction score prediction=%s: %w", pred.ID, err)
	}

	if prior.Breakdown.Total != 0 {
		if err := s.groupRepo.AddPoints(ctx, pred.UserID, -prior.Breakdown.Total); err != nil {
			return fmt.Errorf("reverse group points user=%s: %w", pred.UserID, err)
		}
		memberships, err := s.groupRepo.ListMembershipsByUser(ctx, pred.UserID)
		if err != nil {
			return fmt.Errorf("list memberships for reversal user=%s: %w", pred.UserID, err)
		}
		for _, member := range memberships {
			touchedGroups[member.GroupID] = struct{}{}
		}
	}
	return nil
}

func (s *ResultService) recordIngestionAudit(ctx context.Context, actorID string, res result.Result, updated int, now time.Time) error {
	entryID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate audit entry id: %w", err)
	}
	if err := s.auditRepo.Record(ctx, audit.Entry{
		ID:         entryID,
		ActorID:    actorID,
		Action:     audit.ActionResultIngested,
		EntityType: audit.EntityTypeMatch,
		EntityID:   res.MatchID,
		Metadata: map[string]any{
			"home_score":          res.HomeScore,
			"away_score":          res.AwayScore,
			"winner":              string(res.Winner),
			"predictions_updated": updated,
		},
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("record ingestion audit entry: %w", err)
	}
	return nil
}

func counterAdjust(now, before bool) int {
	switch {
	case now && !before:
		return 1
	case !now && before:
		return -1
	default:
		return 0
	}
}

// predictionScorable guards the rescore loop against rows that predate the
// current validation rules. A bad row is skipped, never fatal.
func predictionScorable(pred prediction.Prediction) bool {
	if pred.ID == "" || pred.UserID == "" {
		return false
	}
	if pred.HomeScore < 0 || pred.HomeScore > maxGoals || pred.AwayScore < 0 || pred.AwayScore > maxGoals {
		return false
	}
	if pred.YellowCards != nil && (*pred.YellowCards < 0 || *pred.YellowCards > maxYellowCards) {
		return false
	}
	if pred.RedCards != nil && (*pred.RedCards < 0 || *pred.RedCards > maxRedCards) {
		return false
	}
	return true
}

func validateResultInput(input ResultInput) error {
	if input.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.HomeScore > maxGoals {
		return fmt.Errorf("%w: home score must be between 0 and %d", ErrInvalidInput, maxGoals)
	}
	if input.AwayScore < 0 || input.AwayScore > maxGoals {
		return fmt.Errorf("%w: away score must be between 0 and %d", ErrInvalidInput, maxGoals)
	}
	if input.YellowCards != nil && (*input.YellowCards < 0 || *input.YellowCards > maxYellowCards) {
		return fmt.Errorf("%w: yellow cards must be between 0 and %d", ErrInvalidInput, maxYellowCards)
	}
	if input.RedCards != nil && (*input.RedCards < 0 || *input.RedCards > maxRedCards) {
		return fmt.Errorf("%w: red cards must be between 0 and %d", ErrInvalidInput, maxRedCards)
	}
	for _, name := range []string{input.TopScorer, input.FirstScorer, input.MVP, input.MostPasses} {
		if len(name) > maxNameLength {
			return fmt.Errorf("%w: player names must be at most %d characters", ErrInvalidInput, maxNameLength)
		}
	}
	return nil
}
