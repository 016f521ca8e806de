package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
)

func (h *Handler) ListTeamEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamEvents")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	loaded, err := h.eventService.LoadTeamEvents(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "load team events failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loaded)
}

func (h *Handler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSummary")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.analysisService.Summary(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "team summary failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetRivalReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRivalReport")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.analysisService.RivalReport(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "rival report failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetOwnReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOwnReport")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query.Group = matchevent.GroupKey(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("group"))))

	report, err := h.analysisService.OwnReport(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "own report failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetShotMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShotMap")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	shots, err := h.analysisService.ShotMap(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "shot map failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shots)
}

// ExportTeamEventsCSV streams the normalized table as an attachment. Load warnings travel
// in the X-Warnings header since the body is not an envelope.
func (h *Handler) ExportTeamEventsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportTeamEventsCSV")
	defer span.End()

	query, err := h.teamFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	export, err := h.exportService.TeamEventsCSV(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "export team events failed", "team", query.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("X-Row-Count", strconv.Itoa(export.Rows))
	if len(export.Warnings) > 0 {
		w.Header().Set("X-Warnings", strings.Join(export.Warnings, "; "))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Body)
}

func (h *Handler) CompareTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareTeams")
	defer span.End()

	query, err := h.pairFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.analysisService.Compare(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "compare teams failed", "own", query.Own, "rival", query.Rival, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}

func (h *Handler) SimulateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateMatch")
	defer span.End()

	query, err := h.pairFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	simulation, err := h.analysisService.Simulate(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "simulate match failed", "own", query.Own, "rival", query.Rival, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, simulation)
}
