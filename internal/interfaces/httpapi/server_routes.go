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

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/divisions", handler.ListDivisions)
	mux.HandleFunc("GET /v1/divisions/{division}/games", handler.ListDivisionGames)
	mux.HandleFunc("GET /v1/divisions/{division}/teams", handler.ListDivisionTeams)
	mux.HandleFunc("GET /v1/divisions/{division}/teams/{team}/games", handler.ListTeamGames)
	mux.HandleFunc("GET /v1/games/{gameKey}", handler.GetGame)
}

func registerStandingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListAllStandings)
	mux.HandleFunc("GET /v1/divisions/{division}/standings", handler.ListDivisionStandings)
	mux.HandleFunc("GET /v1/divisions/{division}/standings.csv", handler.ExportDivisionStandings)
}

func registerTickerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/ticker/today", handler.TickerToday)
	mux.HandleFunc("GET /v1/ticker/finals", handler.TickerFinals)
	mux.HandleFunc("GET /v1/ticker/upcoming", handler.TickerUpcoming)
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("PUT /v1/games/{gameKey}/score", handler.SubmitScore)
	mux.Handle("DELETE /v1/games/{gameKey}/score", RequireAdminToken(adminToken, http.HandlerFunc(handler.RemoveScore)))
	mux.Handle("GET /v1/overrides", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListOverrides)))
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/sync", RequireAdminToken(adminToken, http.HandlerFunc(handler.Sync)))
	mux.HandleFunc("GET /v1/sync/last", handler.LastSync)
}
