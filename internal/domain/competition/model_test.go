package competition

import (
	"reflect"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRecentForTeam(t *testing.T) {
	matches := []Match{
		{ID: 1, HomeTeam: "Leverkusen", AwayTeam: "Bayern", MatchDate: day(1)},
		{ID: 2, HomeTeam: "Dortmund", AwayTeam: "Leverkusen", MatchDate: day(9)},
		{ID: 3, HomeTeam: "Bayern", AwayTeam: "Dortmund", MatchDate: day(12)},
		{ID: 4, HomeTeam: "Leverkusen", AwayTeam: "Mainz", MatchDate: day(16)},
		{ID: 5, HomeTeam: "Stuttgart", AwayTeam: "Leverkusen", MatchDate: day(16)},
	}

	got := RecentForTeam(matches, "Leverkusen", 3)
	ids := make([]int64, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	if !reflect.DeepEqual(ids, []int64{4, 5, 2}) {
		t.Fatalf("unexpected recent matches: %v", ids)
	}

	if got := RecentForTeam(matches, "Union Berlin", 3); len(got) != 0 {
		t.Fatalf("expected no matches for absent team, got %d", len(got))
	}
	if got := RecentForTeam(matches, "Leverkusen", 0); len(got) != 0 {
		t.Fatalf("expected no matches for zero limit")
	}
}

func TestTeamNames(t *testing.T) {
	matches := []Match{
		{HomeTeam: "Mainz", AwayTeam: "Bayern"},
		{HomeTeam: "Bayern", AwayTeam: ""},
	}
	if got := TeamNames(matches); !reflect.DeepEqual(got, []string{"Bayern", "Mainz"}) {
		t.Fatalf("unexpected team names: %v", got)
	}
}
