package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/usecase"
)

type Handler struct {
	matchService         *usecase.MatchService
	predictionService    *usecase.PredictionService
	resultService        *usecase.ResultService
	scoringConfigService *usecase.ScoringConfigService
	leaderboardService   *usecase.LeaderboardService
	lockService          *usecase.LockService
	reminderService      *usecase.ReminderService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	predictionService *usecase.PredictionService,
	resultService *usecase.ResultService,
	scoringConfigService *usecase.ScoringConfigService,
	leaderboardService *usecase.LeaderboardService,
	lockService *usecase.LockService,
	reminderService *usecase.ReminderService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:         matchService,
		predictionService:    predictionService,
		resultService:        resultService,
		scoringConfigService: scoringConfigService,
		leaderboardService:   leaderboardService,
		lockService:          lockService,
		reminderService:      reminderService,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
