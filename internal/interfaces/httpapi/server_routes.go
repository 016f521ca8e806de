package httpapi

import "net/http"

const seasonPrefix = "/v1/competitions/{competitionID}/seasons/{seasonID}"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET "+seasonPrefix+"/matches", handler.ListMatches)
	mux.HandleFunc("GET "+seasonPrefix+"/teams", handler.ListTeams)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/events", handler.ListTeamEvents)
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/events.csv", handler.ExportTeamEventsCSV)
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/summary", handler.GetTeamSummary)
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/rival-report", handler.GetRivalReport)
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/own-report", handler.GetOwnReport)
	mux.HandleFunc("GET "+seasonPrefix+"/teams/{team}/shot-map", handler.GetShotMap)
	// Pair views take ?own=&rival= so both names can contain slashes or spaces.
	mux.HandleFunc("GET "+seasonPrefix+"/compare", handler.CompareTeams)
	mux.HandleFunc("GET "+seasonPrefix+"/simulate", handler.SimulateMatch)
}

func registerTacticsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tactics/tags", handler.ListTacticalTags)
	mux.HandleFunc("POST /v1/tactics/recommendations", handler.RecommendFormations)
	mux.HandleFunc("GET /v1/tactics/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/tactics/formations/{formation}/board", handler.GetFormationBoard)
	mux.HandleFunc("POST /v1/chat", handler.AskTacticalChat)
}
