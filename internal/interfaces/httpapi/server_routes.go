package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/scoring-config", handler.GetScoringConfig)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPrediction)))
	mux.Handle("GET /v1/predictions", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("GET /v1/groups/{groupID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetGroupLeaderboard)))
	mux.Handle("POST /v1/admin/results", RequireAuth(verifier, http.HandlerFunc(handler.IngestResult)))
	mux.Handle("PUT /v1/admin/scoring-config", RequireAuth(verifier, http.HandlerFunc(handler.UpdateScoringConfig)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/lock-predictions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLockPredictionsJob)))
	mux.Handle("POST /v1/internal/jobs/match-reminders", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMatchRemindersJob)))
	mux.Handle("POST /v1/internal/jobs/rebuild-leaderboard", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildLeaderboardJob)))
}
