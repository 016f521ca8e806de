package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	rivalCardLimit      = 12
	ownEvaluationLimit  = 5
	ownExpectedGoalsTop = 10
)

type teamEventsLoader interface {
	LoadTeamEvents(ctx context.Context, query TeamQuery) (TeamEvents, error)
}

type AnalysisService struct {
	events teamEventsLoader
	logger *logging.Logger
}

func NewAnalysisService(events teamEventsLoader, logger *logging.Logger) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisService{events: events, logger: logger}
}

// ReportMeta is shared by every team view.
type ReportMeta struct {
	Team       string   `json:"team"`
	MatchIDs   []int64  `json:"match_ids"`
	EventCount int      `json:"event_count"`
	Warnings   []string `json:"warnings,omitempty"`
	Notice     string   `json:"notice,omitempty"`
}

type PlayerCard struct {
	Player            string  `json:"player"`
	MeanExpectedGoals float64 `json:"mean_expected_goals"`
	AboveThreshold    bool    `json:"above_threshold"`
}

type RivalReport struct {
	ReportMeta
	Formations []matchevent.FormationCount `json:"formations"`
	Cards      []PlayerCard                `json:"cards"`
}

type OwnReport struct {
	ReportMeta
	Evaluations   []matchevent.PlayerEvaluation `json:"evaluations"`
	Group         matchevent.GroupKey           `json:"group"`
	ExpectedGoals []matchevent.Ranked           `json:"expected_goals"`
}

type ShotMap struct {
	ReportMeta
	Shots     int                   `json:"shots"`
	Locations []matchevent.Location `json:"locations"`
}

type TeamSummary struct {
	matchevent.MatchSummary
	Warnings []string `json:"warnings,omitempty"`
	Notice   string   `json:"notice,omitempty"`
}

func (s *AnalysisService) RivalReport(ctx context.Context, query TeamQuery) (RivalReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.RivalReport", teamAttrs(query)...)
	defer span.End()

	loaded, events, err := s.load(ctx, query, DefaultAnalysisMatches)
	if err != nil {
		return RivalReport{}, err
	}

	means := matchevent.TopMeanExpectedGoals(events, rivalCardLimit)
	cards := make([]PlayerCard, 0, len(means))
	for _, item := range means {
		cards = append(cards, PlayerCard{
			Player:            item.Key,
			MeanExpectedGoals: item.Value,
			AboveThreshold:    item.Value >= matchevent.DefaultXGThreshold,
		})
	}

	return RivalReport{
		ReportMeta: reportMeta(loaded, events),
		Formations: matchevent.FormationFrequency(events, matchevent.FormationDisplayLimit),
		Cards:      cards,
	}, nil
}

func (s *AnalysisService) OwnReport(ctx context.Context, query TeamQuery) (OwnReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.OwnReport", teamAttrs(query)...)
	defer span.End()

	group := query.Group
	if group == "" {
		group = matchevent.GroupByPlayer
	}
	if !group.Valid() {
		return OwnReport{}, fmt.Errorf("%w: group must be %q or %q, got %q", ErrInvalidInput, matchevent.GroupByPlayer, matchevent.GroupByTeam, query.Group)
	}

	loaded, events, err := s.load(ctx, query, DefaultAnalysisMatches)
	if err != nil {
		return OwnReport{}, err
	}

	active := matchevent.TopPlayersByEventCount(events, ownEvaluationLimit)
	evaluations := make([]matchevent.PlayerEvaluation, 0, len(active))
	for _, player := range active {
		evaluations = append(evaluations, matchevent.EvaluatePlayer(events, player.Key, matchevent.DefaultXGThreshold))
	}

	// Team totals compare both sides of the selected matches.
	ranked := events
	if group == matchevent.GroupByTeam {
		ranked = loaded.Events
	}

	return OwnReport{
		ReportMeta:    reportMeta(loaded, events),
		Evaluations:   evaluations,
		Group:         group,
		ExpectedGoals: matchevent.TopByExpectedGoals(ranked, group, ownExpectedGoalsTop),
	}, nil
}

func (s *AnalysisService) ShotMap(ctx context.Context, query TeamQuery) (ShotMap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ShotMap", teamAttrs(query)...)
	defer span.End()

	loaded, events, err := s.load(ctx, query, DefaultShotMapMatches)
	if err != nil {
		return ShotMap{}, err
	}

	return ShotMap{
		ReportMeta: reportMeta(loaded, events),
		Shots:      matchevent.CountByType(events, matchevent.TypeShot),
		Locations:  matchevent.ShotLocations(events),
	}, nil
}

func (s *AnalysisService) Summary(ctx context.Context, query TeamQuery) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Summary", teamAttrs(query)...)
	defer span.End()

	loaded, events, err := s.load(ctx, query, DefaultAnalysisMatches)
	if err != nil {
		return TeamSummary{}, err
	}

	return TeamSummary{
		MatchSummary: matchevent.Summarize(loaded.Team, events),
		Warnings:     loaded.Warnings,
		Notice:       loaded.Notice,
	}, nil
}

type PairQuery struct {
	CompetitionID int64
	SeasonID      int64
	Own           string
	Rival         string
	MaxMatches    int
}

type TeamCounts struct {
	Team  string `json:"team"`
	Shots int    `json:"shots"`
	Cards int    `json:"cards"`
}

type Comparison struct {
	Own      TeamCounts `json:"own"`
	Rival    TeamCounts `json:"rival"`
	Warnings []string   `json:"warnings,omitempty"`
}

type Simulation struct {
	Own         string                 `json:"own"`
	Rival       string                 `json:"rival"`
	Probability matchevent.Probability `json:"probability"`
	Warnings    []string               `json:"warnings,omitempty"`
}

func (s *AnalysisService) Compare(ctx context.Context, query PairQuery) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Compare")
	defer span.End()

	own, rival, err := s.loadPair(ctx, query)
	if err != nil {
		return Comparison{}, err
	}

	ownEvents, rivalEvents := own.TeamOnly(), rival.TeamOnly()
	return Comparison{
		Own: TeamCounts{
			Team:  own.Team,
			Shots: matchevent.CountByType(ownEvents, matchevent.TypeShot),
			Cards: matchevent.CountByType(ownEvents, matchevent.TypeCard),
		},
		Rival: TeamCounts{
			Team:  rival.Team,
			Shots: matchevent.CountByType(rivalEvents, matchevent.TypeShot),
			Cards: matchevent.CountByType(rivalEvents, matchevent.TypeCard),
		},
		Warnings: mergeWarnings(own.Warnings, rival.Warnings),
	}, nil
}

// Simulate estimates the own team's win chance from the total xG each side produced.
func (s *AnalysisService) Simulate(ctx context.Context, query PairQuery) (Simulation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Simulate")
	defer span.End()

	own, rival, err := s.loadPair(ctx, query)
	if err != nil {
		return Simulation{}, err
	}

	return Simulation{
		Own:   own.Team,
		Rival: rival.Team,
		Probability: matchevent.WinProbability(
			matchevent.TotalExpectedGoals(own.TeamOnly()),
			matchevent.TotalExpectedGoals(rival.TeamOnly()),
		),
		Warnings: mergeWarnings(own.Warnings, rival.Warnings),
	}, nil
}

func (s *AnalysisService) load(ctx context.Context, query TeamQuery, defaultMatches int) (TeamEvents, []matchevent.EventRecord, error) {
	if s.events == nil {
		return TeamEvents{}, nil, fmt.Errorf("%w: event loader is not configured", ErrDependencyUnavailable)
	}
	if query.MaxMatches == 0 {
		query.MaxMatches = defaultMatches
	}
	loaded, err := s.events.LoadTeamEvents(ctx, query)
	if err != nil {
		return TeamEvents{}, nil, err
	}
	return loaded, loaded.TeamOnly(), nil
}

// loadPair loads both teams concurrently.
func (s *AnalysisService) loadPair(ctx context.Context, query PairQuery) (TeamEvents, TeamEvents, error) {
	query.Own = strings.TrimSpace(query.Own)
	query.Rival = strings.TrimSpace(query.Rival)
	if query.Own == "" || query.Rival == "" {
		return TeamEvents{}, TeamEvents{}, fmt.Errorf("%w: own and rival teams are required", ErrInvalidInput)
	}
	if s.events == nil {
		return TeamEvents{}, TeamEvents{}, fmt.Errorf("%w: event loader is not configured", ErrDependencyUnavailable)
	}

	maxMatches := query.MaxMatches
	if maxMatches == 0 {
		maxMatches = DefaultAnalysisMatches
	}

	var (
		own, rival       TeamEvents
		ownErr, rivalErr error
		wg               conc.WaitGroup
	)
	wg.Go(func() {
		own, ownErr = s.events.LoadTeamEvents(ctx, TeamQuery{
			CompetitionID: query.CompetitionID,
			SeasonID:      query.SeasonID,
			Team:          query.Own,
			MaxMatches:    maxMatches,
		})
	})
	wg.Go(func() {
		rival, rivalErr = s.events.LoadTeamEvents(ctx, TeamQuery{
			CompetitionID: query.CompetitionID,
			SeasonID:      query.SeasonID,
			Team:          query.Rival,
			MaxMatches:    maxMatches,
		})
	})
	wg.Wait()

	if ownErr != nil {
		return TeamEvents{}, TeamEvents{}, fmt.Errorf("load own team events team=%s: %w", query.Own, ownErr)
	}
	if rivalErr != nil {
		return TeamEvents{}, TeamEvents{}, fmt.Errorf("load rival team events team=%s: %w", query.Rival, rivalErr)
	}
	return own, rival, nil
}

func reportMeta(loaded TeamEvents, events []matchevent.EventRecord) ReportMeta {
	ids := make([]int64, 0, len(loaded.Matches))
	for _, m := range loaded.Matches {
		ids = append(ids, m.ID)
	}
	notice := loaded.Notice
	if notice == "" && len(events) == 0 {
		notice = noEventsNotice(loaded.Team)
	}
	return ReportMeta{
		Team:       loaded.Team,
		MatchIDs:   ids,
		EventCount: len(events),
		Warnings:   loaded.Warnings,
		Notice:     notice,
	}
}

func mergeWarnings(groups ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, w := range group {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
