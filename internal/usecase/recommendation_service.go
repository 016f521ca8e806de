package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/tactics"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
)

type RecommendationInput struct {
	Strengths  []string
	Weaknesses []string
}

type RecommendationResult struct {
	Strengths       []tactics.Strength       `json:"strengths"`
	Weaknesses      []tactics.Weakness       `json:"weaknesses"`
	Recommendations []tactics.Recommendation `json:"recommendations"`
}

type Vocabulary struct {
	Strengths  []tactics.TagInfo `json:"strengths"`
	Weaknesses []tactics.TagInfo `json:"weaknesses"`
}

type BoardInput struct {
	Formation     string
	Width         float64
	Height        float64
	ShowWeakLeft  bool
	ShowWeakRight bool
	ShowHalfSpace bool
}

type recommendationRecorder interface {
	ObserveRecommendation(formation string)
}

type RecommendationService struct {
	recommender *tactics.Recommender
	metrics     recommendationRecorder
	logger      *logging.Logger
}

func NewRecommendationService(recommender *tactics.Recommender, metrics recommendationRecorder, logger *logging.Logger) *RecommendationService {
	if recommender == nil {
		recommender = tactics.NewRecommender(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecommendationService{recommender: recommender, metrics: metrics, logger: logger}
}

// Recommend parses both tag lists and runs the rule table. Unknown tags are rejected
// with every offending value listed.
func (s *RecommendationService) Recommend(ctx context.Context, input RecommendationInput) (RecommendationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.Recommend")
	defer span.End()

	var problems []error
	strengthTags := make([]tactics.Strength, 0, len(input.Strengths))
	for _, raw := range input.Strengths {
		tag, err := tactics.ParseStrength(raw)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		strengthTags = append(strengthTags, tag)
	}
	weaknessTags := make([]tactics.Weakness, 0, len(input.Weaknesses))
	for _, raw := range input.Weaknesses {
		tag, err := tactics.ParseWeakness(raw)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		weaknessTags = append(weaknessTags, tag)
	}
	if len(problems) > 0 {
		return RecommendationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(problems...))
	}

	strengths := tactics.NewStrengthSet(strengthTags...)
	weaknesses := tactics.NewWeaknessSet(weaknessTags...)
	recommendations := s.recommender.Recommend(strengths, weaknesses)

	if s.metrics != nil {
		for _, item := range recommendations {
			s.metrics.ObserveRecommendation(item.Formation)
		}
	}
	s.logger.DebugContext(ctx, "formations recommended",
		"strengths", len(strengths),
		"weaknesses", len(weaknesses),
		"recommendations", len(recommendations),
	)

	return RecommendationResult{
		Strengths:       dedupe(strengthTags),
		Weaknesses:      dedupe(weaknessTags),
		Recommendations: recommendations,
	}, nil
}

func (s *RecommendationService) Vocabulary(_ context.Context) Vocabulary {
	return Vocabulary{
		Strengths:  tactics.Strengths(),
		Weaknesses: tactics.Weaknesses(),
	}
}

func (s *RecommendationService) Formations(_ context.Context) []string {
	return tactics.FormationNames()
}

// Board lays out a formation. Unknown formations are ErrNotFound rather than the silent
// 4-3-3 fallback the layout helper applies.
func (s *RecommendationService) Board(_ context.Context, input BoardInput) (tactics.Board, error) {
	formation := strings.TrimSpace(input.Formation)
	if _, ok := tactics.Layout(formation); !ok {
		return tactics.Board{}, fmt.Errorf("%w: formation %q has no board template", ErrNotFound, formation)
	}
	if input.Width < 0 || input.Height < 0 {
		return tactics.Board{}, fmt.Errorf("%w: board size must be >= 0", ErrInvalidInput)
	}

	return tactics.BuildBoard(tactics.BoardOptions{
		Width:         input.Width,
		Height:        input.Height,
		Formation:     formation,
		ShowWeakLeft:  input.ShowWeakLeft,
		ShowWeakRight: input.ShowWeakRight,
		ShowHalfSpace: input.ShowHalfSpace,
	}), nil
}

func dedupe[T comparable](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
