package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golazozone/prediction-league/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	limit := 0
	rawLimit := strings.TrimSpace(r.URL.Query().Get("limit"))
	if rawLimit != "" {
		value, err := strconv.Atoi(rawLimit)
		if err != nil || value <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = value
	}

	entries, err := h.leaderboardService.ListTop(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupLeaderboard")
	defer span.End()

	groupID := r.PathValue("groupID")
	standings, err := h.leaderboardService.GroupStandings(ctx, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get group leaderboard failed", "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	members := make([]groupMemberStandingDTO, 0, len(standings.Members))
	for _, member := range standings.Members {
		members = append(members, groupMemberStandingDTO{
			Rank:        member.Rank,
			UserID:      member.UserID,
			DisplayName: member.DisplayName,
			GroupPoints: member.GroupPoints,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, groupStandingsDTO{
		GroupID:   standings.GroupID,
		GroupName: standings.GroupName,
		Members:   members,
	})
}
