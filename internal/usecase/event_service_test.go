package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	competitionmock "github.com/merlocpr-creator/tacticxai-mvp/internal/mocks/domain/competition"
	rawdatamock "github.com/merlocpr-creator/tacticxai-mvp/internal/mocks/domain/rawdata"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

var fetchedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seasonMatches() []competition.Match {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	return []competition.Match{
		{ID: 3, HomeTeam: "Spain", AwayTeam: "Croatia", MatchDate: day(15)},
		{ID: 1, HomeTeam: "Spain", AwayTeam: "Italy", MatchDate: day(20)},
		{ID: 9, HomeTeam: "England", AwayTeam: "Serbia", MatchDate: day(16)},
		{ID: 2, HomeTeam: "Albania", AwayTeam: "Spain", MatchDate: day(24)},
	}
}

func statsBombShot(team, player string, xg float64) matchevent.Raw {
	return matchevent.Raw{
		"type":   map[string]any{"id": float64(16), "name": "Shot"},
		"team":   map[string]any{"id": float64(772), "name": team},
		"player": map[string]any{"id": float64(1), "name": player},
		"shot":   map[string]any{"statsbomb_xg": xg},
		"minute": float64(12),
	}
}

func eventsPayload(matchID string) rawdata.Payload {
	return rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityEvents, matchID, []byte(`[]`), fetchedAt)
}

func TestEventService_LoadTeamEvents_PreservesOrderAndFallsBackToArchive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := competitionmock.NewProvider(t)
	archive := rawdatamock.NewRepository(t)

	provider.On("ListMatches", mock.Anything, int64(55), int64(282)).Return(seasonMatches(), []rawdata.Payload(nil), nil).Once()
	provider.On("FetchEvents", mock.Anything, int64(2)).
		Return([]matchevent.Raw{statsBombShot("Spain", "Morata", 0.4), statsBombShot("Albania", "Broja", 0.1)}, eventsPayload("2"), nil).
		Once()
	provider.On("FetchEvents", mock.Anything, int64(1)).
		Return(nil, rawdata.Payload{}, errors.New("statsbomb request failed status=503")).
		Once()
	provider.On("FetchEvents", mock.Anything, int64(3)).
		Return([]matchevent.Raw{statsBombShot("Spain", "Yamal", 0.2)}, eventsPayload("3"), nil).
		Once()

	archive.On("Get", mock.Anything, rawdata.SourceStatsBomb, rawdata.EntityEvents, "1").
		Return(rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityEvents, "1",
			[]byte(`[{"type":{"name":"Shot"},"team":{"name":"Spain"},"player":{"name":"Olmo"},"shot":{"statsbomb_xg":0.3}}]`), fetchedAt), true, nil).
		Once()
	archive.On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []rawdata.Payload) bool {
		return len(items) == 2 && items[0].EntityKey == "2" && items[1].EntityKey == "3"
	})).Return(nil).Once()

	service := NewEventService(provider, archive, nil, nil, EventServiceConfig{Workers: 3}, nil)
	got, err := service.LoadTeamEvents(ctx, TeamQuery{CompetitionID: 55, SeasonID: 282, Team: " Spain "})
	if err != nil {
		t.Fatalf("load team events: %v", err)
	}

	if got.Team != "Spain" {
		t.Fatalf("unexpected team: %q", got.Team)
	}
	if len(got.Matches) != 3 || got.Matches[0].ID != 2 || got.Matches[1].ID != 1 || got.Matches[2].ID != 3 {
		t.Fatalf("expected 3 most recent matches newest first, got %+v", got.Matches)
	}

	wantPlayers := []string{"Morata", "Broja", "Olmo", "Yamal"}
	if len(got.Events) != len(wantPlayers) {
		t.Fatalf("unexpected event count: got=%d want=%d", len(got.Events), len(wantPlayers))
	}
	for i, want := range wantPlayers {
		if got.Events[i].PlayerName != want {
			t.Fatalf("event %d: got player %q want %q", i, got.Events[i].PlayerName, want)
		}
	}
	if got.Events[2].MatchID != 1 || got.Events[3].MatchID != 3 {
		t.Fatalf("expected match ids filled from the match list, got %d and %d", got.Events[2].MatchID, got.Events[3].MatchID)
	}

	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "match_id 1") || !strings.Contains(got.Warnings[0], "archived copy") {
		t.Fatalf("expected one warning for match 1 served from archive, got %v", got.Warnings)
	}
	if len(got.TeamOnly()) != 3 {
		t.Fatalf("expected 3 Spain events, got %d", len(got.TeamOnly()))
	}
}

func TestEventService_LoadTeamEvents_SkipsFailedMatchWithoutArchive(t *testing.T) {
	t.Parallel()

	provider := competitionmock.NewProvider(t)
	provider.On("ListMatches", mock.Anything, int64(55), int64(282)).Return(seasonMatches(), []rawdata.Payload(nil), nil).Once()
	provider.On("FetchEvents", mock.Anything, int64(2)).
		Return(nil, rawdata.Payload{}, errors.New("timeout")).
		Once()

	service := NewEventService(provider, nil, nil, nil, EventServiceConfig{}, nil)
	got, err := service.LoadTeamEvents(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain", MaxMatches: 1})
	if err != nil {
		t.Fatalf("load team events: %v", err)
	}
	if len(got.Events) != 0 || len(got.Warnings) != 1 {
		t.Fatalf("expected no events and one warning, got events=%d warnings=%v", len(got.Events), got.Warnings)
	}
	if got.Notice == "" {
		t.Fatalf("expected notice when no events were loaded")
	}
}

func TestEventService_LoadTeamEvents_MatchListFailureIsWarning(t *testing.T) {
	t.Parallel()

	provider := competitionmock.NewProvider(t)
	provider.On("ListMatches", mock.Anything, int64(55), int64(282)).
		Return(nil, nil, errors.New("dns failure")).
		Once()

	service := NewEventService(provider, nil, nil, nil, EventServiceConfig{}, nil)
	got, err := service.LoadTeamEvents(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "match list unavailable") {
		t.Fatalf("unexpected warnings: %v", got.Warnings)
	}
	if got.Events == nil || len(got.Events) != 0 {
		t.Fatalf("expected empty non-nil events")
	}
}

func TestEventService_LoadTeamEvents_UnknownTeamHasNotice(t *testing.T) {
	t.Parallel()

	provider := competitionmock.NewProvider(t)
	provider.On("ListMatches", mock.Anything, int64(55), int64(282)).Return(seasonMatches(), []rawdata.Payload(nil), nil).Once()

	service := NewEventService(provider, nil, nil, nil, EventServiceConfig{}, nil)
	got, err := service.LoadTeamEvents(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Brazil"})
	if err != nil {
		t.Fatalf("load team events: %v", err)
	}
	if len(got.Matches) != 0 || !strings.Contains(got.Notice, "no matches") {
		t.Fatalf("expected no matches notice, got %+v", got)
	}
}

func TestEventService_LoadTeamEvents_UsesCacheForSameMatchSet(t *testing.T) {
	t.Parallel()

	provider := competitionmock.NewProvider(t)
	provider.On("ListMatches", mock.Anything, int64(55), int64(282)).Return(seasonMatches(), []rawdata.Payload(nil), nil).Twice()
	provider.On("FetchEvents", mock.Anything, int64(2)).
		Return([]matchevent.Raw{statsBombShot("Spain", "Morata", 0.4)}, eventsPayload("2"), nil).
		Once()

	store := cache.NewStore(time.Minute)
	service := NewEventService(provider, nil, store, nil, EventServiceConfig{}, nil)
	query := TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain", MaxMatches: 1}

	first, err := service.LoadTeamEvents(context.Background(), query)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := service.LoadTeamEvents(context.Background(), query)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("unexpected event counts first=%d second=%d", len(first.Events), len(second.Events))
	}
}

func TestEventService_LoadTeamEvents_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewEventService(competitionmock.NewProvider(t), nil, nil, nil, EventServiceConfig{}, nil)
	tests := []struct {
		name  string
		query TeamQuery
	}{
		{name: "missing team", query: TeamQuery{CompetitionID: 55, SeasonID: 282}},
		{name: "missing competition", query: TeamQuery{SeasonID: 282, Team: "Spain"}},
		{name: "negative matches", query: TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain", MaxMatches: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.LoadTeamEvents(context.Background(), tt.query); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNormalizeTeamQuery_CapsMatches(t *testing.T) {
	got, err := normalizeTeamQuery(TeamQuery{CompetitionID: 1, SeasonID: 2, Team: "Spain", MaxMatches: 50}, DefaultEventMatches)
	if err != nil {
		t.Fatalf("normalize query: %v", err)
	}
	if got.MaxMatches != MaxMatchesPerRequest {
		t.Fatalf("expected cap %d, got %d", MaxMatchesPerRequest, got.MaxMatches)
	}

	got, _ = normalizeTeamQuery(TeamQuery{CompetitionID: 1, SeasonID: 2, Team: "Spain"}, DefaultShotMapMatches)
	if got.MaxMatches != DefaultShotMapMatches {
		t.Fatalf("expected default %d, got %d", DefaultShotMapMatches, got.MaxMatches)
	}
}
