package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /v1/settings", handler.SaveSettings)

	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("POST /v1/leagues", handler.CreateLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}", handler.UpdateLeague)
	mux.HandleFunc("DELETE /v1/leagues/{leagueID}", handler.DeleteLeague)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/main", handler.GetMainTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListRoster)
	mux.HandleFunc("GET /v1/teams/{teamID}/season", handler.GetSeasonReport)

	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/boxscore", handler.GetBoxScore)

	mux.HandleFunc("POST /v1/matches/{matchID}/imports/csv", handler.PreviewCSVImport)
	mux.HandleFunc("POST /v1/matches/{matchID}/imports/image", handler.PreviewImageImport)
	mux.HandleFunc("POST /v1/matches/{matchID}/imports/commit", handler.CommitImport)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute-scores", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunRecomputeScoresJob)))
}
