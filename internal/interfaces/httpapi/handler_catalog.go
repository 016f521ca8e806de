package httpapi

import (
	"net/http"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.catalogService.ListCompetitions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	season, err := h.seasonFromPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalogService.ListMatches(ctx, season.CompetitionID, season.SeasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed",
			"competition_id", season.CompetitionID,
			"season_id", season.SeasonID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	season, err := h.seasonFromPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.catalogService.ListTeams(ctx, season.CompetitionID, season.SeasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed",
			"competition_id", season.CompetitionID,
			"season_id", season.SeasonID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}
