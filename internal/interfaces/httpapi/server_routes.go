package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/managers", handler.RegisterManager)
	mux.HandleFunc("GET /v1/managers", handler.ListManagers)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/draft", handler.GetDraft)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweek)
	mux.HandleFunc("GET /v1/gameweeks/{gameweek}/results", handler.GetGameweekResults)
	mux.HandleFunc("GET /v1/lineups/{managerID}", handler.GetLineup)
	mux.HandleFunc("GET /v1/transfers/{managerID}", handler.ListTransfers)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/draft", RequireManager(http.HandlerFunc(handler.StartDraft)))
	mux.Handle("POST /v1/draft/picks", RequireManager(http.HandlerFunc(handler.MakePick)))
	mux.Handle("PUT /v1/lineups", RequireManager(http.HandlerFunc(handler.SubmitLineup)))
	mux.Handle("PUT /v1/lineups/captain", RequireManager(http.HandlerFunc(handler.SetCaptain)))
	mux.Handle("POST /v1/transfers", RequireManager(http.HandlerFunc(handler.ApplyTransfer)))
	mux.Handle("POST /v1/gameweeks/advance", RequireManager(http.HandlerFunc(handler.AdvanceGameweek)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RefreshStats)))
}
