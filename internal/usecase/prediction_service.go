package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/user"
	"github.com/golazozone/prediction-league/internal/platform/id"
)

type PredictionService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	resultRepo     result.Repository
	scoreRepo      scoring.ScoreRepository
	leaderboards   *LeaderboardService
	idGen          id.Generator
	now            func() time.Time
}

type PredictionInput struct {
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

// PredictionView joins one stored prediction with its match and, once the
// match is settled, the official result and the earned breakdown.
type PredictionView struct {
	Prediction prediction.Prediction
	Match      match.Match
	Result     *result.Result
	Score      *scoring.Breakdown
}

func NewPredictionService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	resultRepo result.Repository,
	scoreRepo scoring.ScoreRepository,
	leaderboards *LeaderboardService,
	idGen id.Generator,
) *PredictionService {
	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		resultRepo:     resultRepo,
		scoreRepo:      scoreRepo,
		leaderboards:   leaderboards,
		idGen:          idGen,
		now:            time.Now,
	}
}

// Submit creates or revises the caller's prediction for one match. The lock
// cutoff is enforced against the wall clock at this instant, never against
// the asynchronously stamped lock flag.
func (s *PredictionService) Submit(ctx context.Context, actor user.Principal, input PredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	if actor.UserID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: missing authenticated user", ErrUnauthorized)
	}
	if err := validatePredictionInput(input); err != nil {
		return prediction.Prediction{}, err
	}

	m, found, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match for prediction: %w", err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if !m.Predictable {
		return prediction.Prediction{}, fmt.Errorf("%w: match %s does not accept predictions", ErrMatchNotPredictable, m.ID)
	}

	now := s.now().UTC()
	if !now.Before(m.LockAt) {
		return prediction.Prediction{}, fmt.Errorf("%w: match %s locked at %s", ErrPredictionLocked, m.ID, m.LockAt.Format(time.RFC3339))
	}

	existing, exists, err := s.predictionRepo.GetByUserAndMatch(ctx, actor.UserID, m.ID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get existing prediction: %w", err)
	}
	if exists && existing.IsLocked() {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction %s is already locked", ErrPredictionLocked, existing.ID)
	}

	pred := prediction.Prediction{
		UserID:      actor.UserID,
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
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if exists {
		pred.ID = existing.ID
		pred.CreatedAt = existing.CreatedAt
	} else {
		newID, err := s.idGen.NewID()
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		pred.ID = newID
	}

	stored, err := s.predictionRepo.Upsert(ctx, pred)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	if err := s.leaderboards.EnsureEntry(ctx, actor.UserID, actor.DisplayName); err != nil {
		return prediction.Prediction{}, err
	}

	return stored, nil
}

// ListForUser returns the caller's predictions joined with match, result and
// score, ordered by kickoff.
func (s *PredictionService) ListForUser(ctx context.Context, userID string) ([]PredictionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListForUser")
	defer span.End()

	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	out := make([]PredictionView, 0, len(predictions))
	for _, pred := range predictions {
		m, found, err := s.matchRepo.GetByID(ctx, pred.MatchID)
		if err != nil {
			return nil, fmt.Errorf("get match for prediction view: %w", err)
		}
		if !found {
			continue
		}

		view := PredictionView{Prediction: pred, Match: m}

		if res, ok, err := s.resultRepo.GetByMatch(ctx, pred.MatchID); err != nil {
			return nil, fmt.Errorf("get result for prediction view: %w", err)
		} else if ok {
			view.Result = &res
		}

		if score, ok, err := s.scoreRepo.GetByPrediction(ctx, pred.ID); err != nil {
			return nil, fmt.Errorf("get score for prediction view: %w", err)
		} else if ok {
			bd := score.Breakdown
			view.Score = &bd
		}

		out = append(out, view)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.KickoffAt.Before(out[j].Match.KickoffAt)
	})
	return out, nil
}

func validatePredictionInput(input PredictionInput) error {
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
