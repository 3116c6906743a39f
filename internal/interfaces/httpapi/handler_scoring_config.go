package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/golazozone/prediction-league/internal/usecase"
)

func (h *Handler) GetScoringConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringConfig")
	defer span.End()

	cfg, err := h.scoringConfigService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get scoring config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringConfigToDTO(cfg))
}

func (h *Handler) UpdateScoringConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScoringConfig")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateScoringConfigRequest
	if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.scoringConfigService.Update(ctx, principal, usecase.ScoringConfigInput{
		Winner:       req.Winner,
		ExactScore:   req.ExactScore,
		TopScorer:    req.TopScorer,
		FirstScorer:  req.FirstScorer,
		MVP:          req.MVP,
		YellowCards:  req.YellowCards,
		RedCards:     req.RedCards,
		MostPasses:   req.MostPasses,
		PerfectBonus: req.PerfectBonus,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update scoring config failed", "actor_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringConfigToDTO(cfg))
}
