package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/golazozone/prediction-league/internal/usecase"
)

func (h *Handler) IngestResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestResult")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req ingestResultRequest
	if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.resultService.IngestResult(ctx, principal, usecase.ResultInput{
		MatchID:     req.MatchID,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		TopScorer:   req.TopScorer,
		FirstScorer: req.FirstScorer,
		MVP:         req.MVP,
		MostPasses:  req.MostPasses,
		YellowCards: req.YellowCards,
		RedCards:    req.RedCards,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest result failed", "actor_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestOutcomeDTO{
		Result:             *resultToDTO(&outcome.Result),
		PredictionsUpdated: outcome.PredictionsUpdated,
		PredictionsSkipped: outcome.PredictionsSkipped,
	})
}
