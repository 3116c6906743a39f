package httpapi

import (
	"net/http"
)

func (h *Handler) RunLockPredictionsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLockPredictionsJob")
	defer span.End()

	outcome, err := h.lockService.LockDuePredictions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "lock predictions job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockTickOutcomeDTO{
		MatchesDue:        outcome.MatchesDue,
		PredictionsLocked: outcome.PredictionsLocked,
		MatchesWentLive:   outcome.MatchesWentLive,
	})
}

func (h *Handler) RunMatchRemindersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMatchRemindersJob")
	defer span.End()

	outcome, err := h.reminderService.SendUpcomingReminders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "match reminders job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reminderOutcomeDTO{
		MatchesFound:  outcome.MatchesFound,
		RemindersSent: outcome.RemindersSent,
		Failures:      outcome.Failures,
	})
}

func (h *Handler) RunRebuildLeaderboardJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRebuildLeaderboardJob")
	defer span.End()

	rebuilt, err := h.leaderboardService.RebuildFromScores(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild leaderboard job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rebuildOutcomeDTO{EntriesRebuilt: rebuilt})
}
