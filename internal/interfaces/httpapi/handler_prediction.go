package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/golazozone/prediction-league/internal/usecase"
)

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitPredictionRequest
	if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.predictionService.Submit(ctx, principal, usecase.PredictionInput{
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
		h.logger.WarnContext(ctx, "submit prediction failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(stored))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	views, err := h.predictionService.ListForUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionViewDTO, 0, len(views))
	for _, view := range views {
		items = append(items, predictionViewDTO{
			Prediction: predictionToDTO(view.Prediction),
			Match:      matchViewToDTO(usecase.MatchView{Match: view.Match}),
			Result:     resultToDTO(view.Result),
			Score:      breakdownToDTO(view.Score),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
