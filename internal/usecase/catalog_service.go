package usecase

import (
	"context"
	"fmt"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
)

type CatalogService struct {
	provider competition.Provider
	archive  payloadArchive
	logger   *logging.Logger
}

func NewCatalogService(provider competition.Provider, archiveRepo rawdata.Repository, logger *logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		provider: provider,
		archive:  payloadArchive{repo: archiveRepo, logger: logger},
		logger:   logger,
	}
}

func (s *CatalogService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCompetitions")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: match data provider is not configured", ErrDependencyUnavailable)
	}

	items, payloads, err := s.provider.ListCompetitions(ctx)
	if err != nil {
		return nil, dependencyError("list competitions", err)
	}
	s.archive.store(ctx, payloads...)

	return items, nil
}

func (s *CatalogService) ListMatches(ctx context.Context, competitionID, seasonID int64) ([]competition.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListMatches")
	defer span.End()

	if err := validateSeasonRef(competitionID, seasonID); err != nil {
		return nil, err
	}
	return s.listMatches(ctx, competitionID, seasonID)
}

// ListTeams lists every team that appears in the season's matches.
func (s *CatalogService) ListTeams(ctx context.Context, competitionID, seasonID int64) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	if err := validateSeasonRef(competitionID, seasonID); err != nil {
		return nil, err
	}
	matches, err := s.listMatches(ctx, competitionID, seasonID)
	if err != nil {
		return nil, err
	}
	return competition.TeamNames(matches), nil
}

func (s *CatalogService) listMatches(ctx context.Context, competitionID, seasonID int64) ([]competition.Match, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: match data provider is not configured", ErrDependencyUnavailable)
	}

	matches, payloads, err := s.provider.ListMatches(ctx, competitionID, seasonID)
	if err != nil {
		return nil, dependencyError(fmt.Sprintf("list matches competition_id=%d season_id=%d", competitionID, seasonID), err)
	}
	s.archive.store(ctx, payloads...)

	return matches, nil
}

func validateSeasonRef(competitionID, seasonID int64) error {
	if competitionID <= 0 {
		return fmt.Errorf("%w: competition id must be > 0", ErrInvalidInput)
	}
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id must be > 0", ErrInvalidInput)
	}
	return nil
}
