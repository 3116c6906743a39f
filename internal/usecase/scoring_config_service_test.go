package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/user"
)

func TestScoringConfigService_Get_FallsBackToDefaults(t *testing.T) {
	t.Parallel()

	service := NewScoringConfigService(&stubConfigRepository{}, &stubAuditRepository{}, &sequenceIDGenerator{})

	cfg, err := service.Get(context.Background())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if cfg != scoring.DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestScoringConfigService_Update(t *testing.T) {
	t.Parallel()

	configRepo := &stubConfigRepository{}
	auditRepo := &stubAuditRepository{}
	service := NewScoringConfigService(configRepo, auditRepo, &sequenceIDGenerator{})

	input := ScoringConfigInput{
		Winner:       4,
		ExactScore:   6,
		TopScorer:    3,
		FirstScorer:  3,
		MVP:          3,
		YellowCards:  2,
		RedCards:     2,
		MostPasses:   2,
		PerfectBonus: 12,
	}
	cfg, err := service.Update(context.Background(), admin(), input)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if cfg.Winner != 4 || cfg.ExactScore != 6 || cfg.PerfectBonus != 12 || cfg.UpdatedBy != "admin-1" {
		t.Fatalf("unexpected saved config: %+v", cfg)
	}

	stored, found, _ := configRepo.Get(context.Background())
	if !found || stored.Winner != 4 {
		t.Fatalf("config not persisted: found=%v %+v", found, stored)
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != "SCORING_CONFIG_SAVED" {
		t.Fatalf("expected one config audit entry, got %+v", auditRepo.entries)
	}
}

func TestScoringConfigService_Update_Rejections(t *testing.T) {
	t.Parallel()

	service := NewScoringConfigService(&stubConfigRepository{}, &stubAuditRepository{}, &sequenceIDGenerator{})
	valid := ScoringConfigInput{Winner: 3, ExactScore: 5, TopScorer: 3, FirstScorer: 3, MVP: 3, YellowCards: 2, RedCards: 2, MostPasses: 2, PerfectBonus: 10}

	if _, err := service.Update(context.Background(), user.Principal{UserID: "user-a"}, valid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	cases := []func(ScoringConfigInput) ScoringConfigInput{
		func(in ScoringConfigInput) ScoringConfigInput { in.Winner = 11; return in },
		func(in ScoringConfigInput) ScoringConfigInput { in.ExactScore = -1; return in },
		func(in ScoringConfigInput) ScoringConfigInput { in.YellowCards = 6; return in },
		func(in ScoringConfigInput) ScoringConfigInput { in.MostPasses = 6; return in },
		func(in ScoringConfigInput) ScoringConfigInput { in.PerfectBonus = 21; return in },
	}
	for idx, mutate := range cases {
		if _, err := service.Update(context.Background(), admin(), mutate(valid)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", idx, err)
		}
	}
}
