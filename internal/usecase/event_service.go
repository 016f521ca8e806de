package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/cache"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

// Match counts loaded per view when the caller does not ask for a specific number.
const (
	DefaultEventMatches    = 3
	DefaultAnalysisMatches = 4
	DefaultShotMapMatches  = 6
	MaxMatchesPerRequest   = 10

	defaultEventWorkers = 4
)

type TeamQuery struct {
	CompetitionID int64
	SeasonID      int64
	Team          string
	MaxMatches    int
	// Group selects the own-report xG grouping. Empty means player.
	Group matchevent.GroupKey
}

// TeamEvents is the normalized event table for the team's most recent matches. It holds
// the events of both sides in those matches.
type TeamEvents struct {
	Team     string                   `json:"team"`
	Matches  []competition.Match      `json:"matches"`
	Events   []matchevent.EventRecord `json:"events"`
	Warnings []string                 `json:"warnings,omitempty"`
	Notice   string                   `json:"notice,omitempty"`
}

// TeamOnly narrows the table to the team's own events.
func (t TeamEvents) TeamOnly() []matchevent.EventRecord {
	return matchevent.FilterTeam(t.Events, t.Team)
}

type EventServiceConfig struct {
	Workers int
}

type normalizedEventsRecorder interface {
	AddNormalizedEvents(n int)
}

type EventService struct {
	provider competition.Provider
	archive  payloadArchive
	cache    *cache.Store
	workers  int
	metrics  normalizedEventsRecorder
	logger   *logging.Logger
}

// NewEventService wires the loader. archiveRepo, store and metrics may be nil.
func NewEventService(
	provider competition.Provider,
	archiveRepo rawdata.Repository,
	store *cache.Store,
	metrics normalizedEventsRecorder,
	cfg EventServiceConfig,
	logger *logging.Logger,
) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultEventWorkers
	}

	return &EventService{
		provider: provider,
		archive:  payloadArchive{repo: archiveRepo, logger: logger},
		cache:    store,
		workers:  workers,
		metrics:  metrics,
		logger:   logger,
	}
}

// LoadTeamEvents fetches and normalizes the events of the team's most recent matches.
// Upstream failures never fail the call: they become warnings and the affected matches
// are skipped or served from the archive.
func (s *EventService) LoadTeamEvents(ctx context.Context, query TeamQuery) (TeamEvents, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.LoadTeamEvents", teamAttrs(query)...)
	defer span.End()

	query, err := normalizeTeamQuery(query, DefaultEventMatches)
	if err != nil {
		return TeamEvents{}, err
	}
	if s.provider == nil {
		return TeamEvents{}, fmt.Errorf("%w: match data provider is not configured", ErrDependencyUnavailable)
	}

	result := TeamEvents{
		Team:    query.Team,
		Matches: []competition.Match{},
		Events:  []matchevent.EventRecord{},
	}

	allMatches, payloads, err := s.provider.ListMatches(ctx, query.CompetitionID, query.SeasonID)
	if err != nil {
		s.logger.WarnContext(ctx, "list matches failed",
			"competition_id", query.CompetitionID,
			"season_id", query.SeasonID,
			"error", err,
		)
		result.Warnings = append(result.Warnings, fmt.Sprintf("match list unavailable: %v", err))
		result.Notice = noEventsNotice(query.Team)
		return result, nil
	}
	s.archive.store(ctx, payloads...)

	recent := competition.RecentForTeam(allMatches, query.Team, query.MaxMatches)
	if len(recent) == 0 {
		result.Notice = fmt.Sprintf("no matches found for team %q", query.Team)
		return result, nil
	}
	result.Matches = recent

	key := teamEventsCacheKey(query.Team, recent)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if events, ok := cached.([]matchevent.EventRecord); ok {
				result.Events = append([]matchevent.EventRecord(nil), events...)
				return result, nil
			}
		}
	}

	loaded, err := s.fetchMatches(ctx, recent)
	if err != nil {
		return TeamEvents{}, err
	}

	archived := make([]rawdata.Payload, 0, len(loaded))
	for _, item := range loaded {
		result.Events = append(result.Events, item.events...)
		if item.warning != "" {
			result.Warnings = append(result.Warnings, item.warning)
		}
		if item.fresh {
			archived = append(archived, item.payload)
		}
	}
	s.archive.store(ctx, archived...)

	if s.metrics != nil {
		s.metrics.AddNormalizedEvents(len(result.Events))
	}
	if len(result.Events) == 0 {
		result.Notice = noEventsNotice(query.Team)
	}
	if s.cache != nil && len(result.Warnings) == 0 {
		s.cache.Set(ctx, key, append([]matchevent.EventRecord(nil), result.Events...))
	}

	s.logger.DebugContext(ctx, "team events loaded",
		"team", query.Team,
		"matches", len(recent),
		"events", len(result.Events),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

type matchLoad struct {
	events  []matchevent.EventRecord
	payload rawdata.Payload
	fresh   bool
	warning string
}

// fetchMatches loads every match on the worker pool. The result keeps match order.
func (s *EventService) fetchMatches(ctx context.Context, matches []competition.Match) ([]matchLoad, error) {
	out := make([]matchLoad, len(matches))

	pool, err := ants.NewPool(min(s.workers, len(matches)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, m := range matches {
		i, m := i, m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = s.loadMatch(ctx, m)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit match fetch to worker pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func (s *EventService) loadMatch(ctx context.Context, m competition.Match) matchLoad {
	raw, payload, err := s.provider.FetchEvents(ctx, m.ID)
	if err == nil {
		return matchLoad{
			events:  normalizeMatchEvents(raw, m.ID),
			payload: payload,
			fresh:   true,
		}
	}

	s.logger.WarnContext(ctx, "fetch match events failed", "match_id", m.ID, "error", err)
	warning := fmt.Sprintf("events for match_id %d unavailable: %v", m.ID, err)

	key := strconv.FormatInt(m.ID, 10)
	archived, ok := s.archive.load(ctx, rawdata.EntityEvents, key)
	if !ok {
		return matchLoad{warning: warning}
	}

	var records []matchevent.Raw
	if err := sonic.UnmarshalString(archived.PayloadJSON, &records); err != nil {
		s.logger.WarnContext(ctx, "decode archived match events failed", "match_id", m.ID, "error", err)
		s.archive.discard(ctx, rawdata.EntityEvents, key)
		return matchLoad{warning: warning}
	}

	return matchLoad{
		events:  normalizeMatchEvents(records, m.ID),
		warning: warning + fmt.Sprintf("; served archived copy from %s", archived.FetchedAt.Format("2006-01-02T15:04:05Z07:00")),
	}
}

// normalizeMatchEvents fills the match id on records that did not carry one.
func normalizeMatchEvents(raw []matchevent.Raw, matchID int64) []matchevent.EventRecord {
	events := matchevent.Normalize(raw)
	for i := range events {
		if events[i].MatchID == 0 {
			events[i].MatchID = matchID
		}
	}
	return events
}

func normalizeTeamQuery(query TeamQuery, defaultMatches int) (TeamQuery, error) {
	if err := validateSeasonRef(query.CompetitionID, query.SeasonID); err != nil {
		return TeamQuery{}, err
	}
	query.Team = strings.TrimSpace(query.Team)
	if query.Team == "" {
		return TeamQuery{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if query.MaxMatches < 0 {
		return TeamQuery{}, fmt.Errorf("%w: matches must be >= 0", ErrInvalidInput)
	}
	if query.MaxMatches == 0 {
		query.MaxMatches = defaultMatches
	}
	query.MaxMatches = min(query.MaxMatches, MaxMatchesPerRequest)
	return query, nil
}

func teamEventsCacheKey(team string, matches []competition.Match) string {
	var b strings.Builder
	b.WriteString("team_events:")
	b.WriteString(team)
	for _, m := range matches {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(m.ID, 10))
	}
	return b.String()
}

func noEventsNotice(team string) string {
	return fmt.Sprintf("no events found for team %q", team)
}
