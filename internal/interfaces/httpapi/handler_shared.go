package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type seasonRequest struct {
	CompetitionID int64 `validate:"gt=0"`
	SeasonID      int64 `validate:"gt=0"`
}

type teamRequest struct {
	seasonRequest
	Team    string `validate:"required,max=120"`
	Matches int    `validate:"gte=0,lte=10"`
}

type pairRequest struct {
	seasonRequest
	Own     string `validate:"required,max=120"`
	Rival   string `validate:"required,max=120"`
	Matches int    `validate:"gte=0,lte=10"`
}

func (h *Handler) seasonFromPath(ctx context.Context, r *http.Request) (seasonRequest, error) {
	competitionID, err := parseIDParam(r, "competitionID")
	if err != nil {
		return seasonRequest{}, err
	}
	seasonID, err := parseIDParam(r, "seasonID")
	if err != nil {
		return seasonRequest{}, err
	}

	req := seasonRequest{CompetitionID: competitionID, SeasonID: seasonID}
	if err := h.validateRequest(ctx, req); err != nil {
		return seasonRequest{}, err
	}
	return req, nil
}

func (h *Handler) teamFromRequest(ctx context.Context, r *http.Request) (usecase.TeamQuery, error) {
	season, err := h.seasonFromPath(ctx, r)
	if err != nil {
		return usecase.TeamQuery{}, err
	}
	matches, err := parseMatchesParam(r)
	if err != nil {
		return usecase.TeamQuery{}, err
	}

	req := teamRequest{seasonRequest: season, Team: strings.TrimSpace(r.PathValue("team")), Matches: matches}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.TeamQuery{}, err
	}

	return usecase.TeamQuery{
		CompetitionID: req.CompetitionID,
		SeasonID:      req.SeasonID,
		Team:          req.Team,
		MaxMatches:    req.Matches,
	}, nil
}

func (h *Handler) pairFromRequest(ctx context.Context, r *http.Request) (usecase.PairQuery, error) {
	season, err := h.seasonFromPath(ctx, r)
	if err != nil {
		return usecase.PairQuery{}, err
	}
	matches, err := parseMatchesParam(r)
	if err != nil {
		return usecase.PairQuery{}, err
	}

	query := r.URL.Query()
	req := pairRequest{
		seasonRequest: season,
		Own:           strings.TrimSpace(query.Get("own")),
		Rival:         strings.TrimSpace(query.Get("rival")),
		Matches:       matches,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.PairQuery{}, err
	}

	return usecase.PairQuery{
		CompetitionID: req.CompetitionID,
		SeasonID:      req.SeasonID,
		Own:           req.Own,
		Rival:         req.Rival,
		MaxMatches:    req.Matches,
	}, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

// parseMatchesParam reads ?matches=N. Absent means the view's default.
func parseMatchesParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("matches"))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: matches must be an integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return v, nil
}

func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
