package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/golazozone/prediction-league/internal/domain/audit"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/user"
	"github.com/golazozone/prediction-league/internal/platform/id"
)

type ScoringConfigService struct {
	configRepo scoring.ConfigRepository
	auditRepo  audit.Repository
	idGen      id.Generator
	now        func() time.Time
}

type ScoringConfigInput struct {
	Winner       int
	ExactScore   int
	TopScorer    int
	FirstScorer  int
	MVP          int
	YellowCards  int
	RedCards     int
	MostPasses   int
	PerfectBonus int
}

func NewScoringConfigService(
	configRepo scoring.ConfigRepository,
	auditRepo audit.Repository,
	idGen id.Generator,
) *ScoringConfigService {
	return &ScoringConfigService{
		configRepo: configRepo,
		auditRepo:  auditRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// Get returns the active point values, falling back to the defaults when no
// config has ever been saved.
func (s *ScoringConfigService) Get(ctx context.Context) (scoring.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.Get")
	defer span.End()

	cfg, found, err := s.configRepo.Get(ctx)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("get scoring config: %w", err)
	}
	if !found {
		return scoring.DefaultConfig(), nil
	}
	return cfg, nil
}

// Update replaces the point values. Already-ingested results keep the scores
// they were settled with; only future ingestions see the new config.
func (s *ScoringConfigService) Update(ctx context.Context, actor user.Principal, input ScoringConfigInput) (scoring.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringConfigService.Update")
	defer span.End()

	if !actor.IsAdmin() {
		return scoring.Config{}, fmt.Errorf("%w: scoring config updates require the admin role", ErrForbidden)
	}
	if err := validateScoringConfigInput(input); err != nil {
		return scoring.Config{}, err
	}

	now := s.now().UTC()
	cfg := scoring.Config{
		Winner:       input.Winner,
		ExactScore:   input.ExactScore,
		TopScorer:    input.TopScorer,
		FirstScorer:  input.FirstScorer,
		MVP:          input.MVP,
		YellowCards:  input.YellowCards,
		RedCards:     input.RedCards,
		MostPasses:   input.MostPasses,
		PerfectBonus: input.PerfectBonus,
		UpdatedBy:    actor.UserID,
		UpdatedAt:    now,
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return scoring.Config{}, fmt.Errorf("save scoring config: %w", err)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return scoring.Config{}, fmt.Errorf("generate audit entry id: %w", err)
	}
	if err := s.auditRepo.Record(ctx, audit.Entry{
		ID:         entryID,
		ActorID:    actor.UserID,
		Action:     audit.ActionScoringConfigSaved,
		EntityType: audit.EntityTypeScoringConfig,
		EntityID:   "singleton",
		Metadata: map[string]any{
			"winner":        cfg.Winner,
			"exact_score":   cfg.ExactScore,
			"top_scorer":    cfg.TopScorer,
			"first_scorer":  cfg.FirstScorer,
			"mvp":           cfg.MVP,
			"yellow_cards":  cfg.YellowCards,
			"red_cards":     cfg.RedCards,
			"most_passes":   cfg.MostPasses,
			"perfect_bonus": cfg.PerfectBonus,
		},
		CreatedAt: now,
	}); err != nil {
		return scoring.Config{}, fmt.Errorf("record scoring config audit entry: %w", err)
	}

	return cfg, nil
}

func validateScoringConfigInput(input ScoringConfigInput) error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"winner", input.Winner, 10},
		{"exact_score", input.ExactScore, 10},
		{"top_scorer", input.TopScorer, 10},
		{"first_scorer", input.FirstScorer, 10},
		{"mvp", input.MVP, 10},
		{"yellow_cards", input.YellowCards, 5},
		{"red_cards", input.RedCards, 10},
		{"most_passes", input.MostPasses, 5},
		{"perfect_bonus", input.PerfectBonus, 20},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > check.max {
			return fmt.Errorf("%w: %s points must be between 0 and %d", ErrInvalidInput, check.name, check.max)
		}
	}
	return nil
}
