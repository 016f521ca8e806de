package httpapi

import (
	"net/http"
	"strings"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
)

type recommendationRequest struct {
	Strengths  []string `json:"strengths" validate:"max=16,dive,required,max=64"`
	Weaknesses []string `json:"weaknesses" validate:"max=16,dive,required,max=64"`
}

type boardRequest struct {
	Formation string  `validate:"required,max=16"`
	Width     float64 `validate:"gte=0,lte=4000"`
	Height    float64 `validate:"gte=0,lte=4000"`
}

func (h *Handler) ListTacticalTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTacticalTags")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.recommendationService.Vocabulary(ctx))
}

func (h *Handler) RecommendFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecommendFormations")
	defer span.End()

	var req recommendationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recommendationService.Recommend(ctx, usecase.RecommendationInput{
		Strengths:  req.Strengths,
		Weaknesses: req.Weaknesses,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recommend formations failed", "strengths", req.Strengths, "weaknesses", req.Weaknesses, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.recommendationService.Formations(ctx))
}

func (h *Handler) GetFormationBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormationBoard")
	defer span.End()

	width, err := parseFloatParam(r, "width")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	height, err := parseFloatParam(r, "height")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.BoardInput{
		Formation: strings.TrimSpace(r.PathValue("formation")),
		Width:     width,
		Height:    height,
	}
	for name, dst := range map[string]*bool{
		"weak_left":  &input.ShowWeakLeft,
		"weak_right": &input.ShowWeakRight,
		"half_space": &input.ShowHalfSpace,
	} {
		if *dst, err = parseBoolParam(r, name); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	if err := h.validateRequest(ctx, boardRequest{Formation: input.Formation, Width: input.Width, Height: input.Height}); err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.recommendationService.Board(ctx, input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}
