package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
)

type loaderFunc func(ctx context.Context, query TeamQuery) (TeamEvents, error)

func (f loaderFunc) LoadTeamEvents(ctx context.Context, query TeamQuery) (TeamEvents, error) {
	return f(ctx, query)
}

func xg(v float64) *float64 { return &v }

func shot(team, player string, value float64, matchID int64) matchevent.EventRecord {
	return matchevent.EventRecord{
		EventType:     matchevent.TypeShot,
		TeamName:      team,
		PlayerName:    player,
		ExpectedGoals: xg(value),
		Location:      &matchevent.Location{X: 100, Y: 40},
		MatchID:       matchID,
	}
}

func card(team, player string, matchID int64) matchevent.EventRecord {
	return matchevent.EventRecord{EventType: matchevent.TypeCard, TeamName: team, PlayerName: player, MatchID: matchID}
}

// fixtureEvents holds a Spain-Italy match seen from both sides.
func fixtureEvents(team string) TeamEvents {
	return TeamEvents{
		Team:    team,
		Matches: []competition.Match{{ID: 7, HomeTeam: "Spain", AwayTeam: "Italy"}},
		Events: []matchevent.EventRecord{
			{EventType: matchevent.TypeStartingXI, TeamName: "Spain", Formation: "4-3-3", MatchID: 7},
			{EventType: matchevent.TypeStartingXI, TeamName: "Italy", Formation: "3-5-2", MatchID: 7},
			shot("Spain", "Morata", 0.6, 7),
			shot("Spain", "Yamal", 0.2, 7),
			shot("Italy", "Scamacca", 0.2, 7),
			card("Italy", "Bastoni", 7),
			card("Spain", "Rodri", 7),
			card("Italy", "Jorginho", 7),
		},
	}
}

func fixtureLoader(seen *[]TeamQuery, mu *sync.Mutex) loaderFunc {
	return func(_ context.Context, query TeamQuery) (TeamEvents, error) {
		if seen != nil {
			mu.Lock()
			*seen = append(*seen, query)
			mu.Unlock()
		}
		return fixtureEvents(query.Team), nil
	}
}

func TestAnalysisService_Compare_CountsOnlyEachTeamsEvents(t *testing.T) {
	t.Parallel()

	var (
		seen []TeamQuery
		mu   sync.Mutex
	)
	service := NewAnalysisService(fixtureLoader(&seen, &mu), nil)

	got, err := service.Compare(context.Background(), PairQuery{CompetitionID: 55, SeasonID: 282, Own: "Spain", Rival: " Italy "})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	want := Comparison{
		Own:   TeamCounts{Team: "Spain", Shots: 2, Cards: 1},
		Rival: TeamCounts{Team: "Italy", Shots: 1, Cards: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected comparison: got=%+v want=%+v", got, want)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both teams to be loaded, got %d calls", len(seen))
	}
	for _, q := range seen {
		if q.MaxMatches != DefaultAnalysisMatches {
			t.Fatalf("expected default matches %d, got %d", DefaultAnalysisMatches, q.MaxMatches)
		}
	}
}

func TestAnalysisService_Simulate(t *testing.T) {
	t.Parallel()

	service := NewAnalysisService(fixtureLoader(nil, nil), nil)
	got, err := service.Simulate(context.Background(), PairQuery{CompetitionID: 55, SeasonID: 282, Own: "Spain", Rival: "Italy"})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if got.Probability.Percent != 80 || got.Probability.Band != matchevent.BandFavourable {
		t.Fatalf("unexpected probability: %+v", got.Probability)
	}
}

func TestAnalysisService_OwnReportGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		group    matchevent.GroupKey
		wantKeys []string
		wantTop  float64
	}{
		{name: "player by default", wantKeys: []string{"Morata", "Yamal"}, wantTop: 0.6},
		{name: "team covers both sides", group: matchevent.GroupByTeam, wantKeys: []string{"Spain", "Italy"}, wantTop: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAnalysisService(fixtureLoader(nil, nil), nil)
			got, err := service.OwnReport(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain", Group: tt.group})
			if err != nil {
				t.Fatalf("own report: %v", err)
			}

			keys := make([]string, 0, len(got.ExpectedGoals))
			for _, item := range got.ExpectedGoals {
				keys = append(keys, item.Key)
			}
			if !reflect.DeepEqual(keys, tt.wantKeys) {
				t.Fatalf("unexpected xG groups: got=%v want=%v", keys, tt.wantKeys)
			}
			if math.Abs(got.ExpectedGoals[0].Value-tt.wantTop) > 1e-9 {
				t.Fatalf("unexpected top xG: got=%v want=%v", got.ExpectedGoals[0].Value, tt.wantTop)
			}
			if len(got.Evaluations) != 3 {
				t.Fatalf("evaluations must stay team scoped, got %+v", got.Evaluations)
			}
		})
	}
}

func TestAnalysisService_OwnReportRejectsUnknownGroup(t *testing.T) {
	t.Parallel()

	called := false
	service := NewAnalysisService(loaderFunc(func(_ context.Context, query TeamQuery) (TeamEvents, error) {
		called = true
		return fixtureEvents(query.Team), nil
	}), nil)

	_, err := service.OwnReport(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain", Group: "season"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if called {
		t.Fatalf("events must not be loaded for an invalid group")
	}
}

func TestAnalysisService_PairRequiresBothTeams(t *testing.T) {
	t.Parallel()

	service := NewAnalysisService(fixtureLoader(nil, nil), nil)
	if _, err := service.Compare(context.Background(), PairQuery{CompetitionID: 55, SeasonID: 282, Own: "Spain"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalysisService_PairPropagatesLoaderError(t *testing.T) {
	t.Parallel()

	service := NewAnalysisService(loaderFunc(func(_ context.Context, query TeamQuery) (TeamEvents, error) {
		if query.Team == "Italy" {
			return TeamEvents{}, ErrInvalidInput
		}
		return fixtureEvents(query.Team), nil
	}), nil)

	_, err := service.Simulate(context.Background(), PairQuery{CompetitionID: 55, SeasonID: 282, Own: "Spain", Rival: "Italy"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

func TestAnalysisService_RivalReport(t *testing.T) {
	t.Parallel()

	service := NewAnalysisService(fixtureLoader(nil, nil), nil)
	got, err := service.RivalReport(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Italy"})
	if err != nil {
		t.Fatalf("rival report: %v", err)
	}

	if got.EventCount != 4 || !reflect.DeepEqual(got.MatchIDs, []int64{7}) {
		t.Fatalf("unexpected meta: %+v", got.ReportMeta)
	}
	if want := []matchevent.FormationCount{{Formation: "3-5-2", Count: 1}}; !reflect.DeepEqual(got.Formations, want) {
		t.Fatalf("unexpected formations: got=%+v want=%+v", got.Formations, want)
	}
	if len(got.Cards) != 1 || got.Cards[0].Player != "Scamacca" || !got.Cards[0].AboveThreshold {
		t.Fatalf("unexpected cards: %+v", got.Cards)
	}
}

func TestAnalysisService_ShotMapUsesWiderWindow(t *testing.T) {
	t.Parallel()

	var (
		seen []TeamQuery
		mu   sync.Mutex
	)
	service := NewAnalysisService(fixtureLoader(&seen, &mu), nil)
	got, err := service.ShotMap(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain"})
	if err != nil {
		t.Fatalf("shot map: %v", err)
	}
	if got.Shots != 2 || len(got.Locations) != 2 {
		t.Fatalf("unexpected shot map: %+v", got)
	}
	if len(seen) != 1 || seen[0].MaxMatches != DefaultShotMapMatches {
		t.Fatalf("expected %d matches requested, got %+v", DefaultShotMapMatches, seen)
	}
}

func TestAnalysisService_EmptyTeamHasNotice(t *testing.T) {
	t.Parallel()

	service := NewAnalysisService(loaderFunc(func(_ context.Context, query TeamQuery) (TeamEvents, error) {
		return TeamEvents{Team: query.Team, Events: []matchevent.EventRecord{}}, nil
	}), nil)

	got, err := service.OwnReport(context.Background(), TeamQuery{CompetitionID: 55, SeasonID: 282, Team: "Spain"})
	if err != nil {
		t.Fatalf("own report: %v", err)
	}
	if got.Notice == "" || len(got.Evaluations) != 0 {
		t.Fatalf("expected empty report with notice, got %+v", got)
	}
}

func TestMergeWarnings(t *testing.T) {
	got := mergeWarnings([]string{"a", "b"}, nil, []string{"b", "c"})
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected warnings: got=%v want=%v", got, want)
	}
}
