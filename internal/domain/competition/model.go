package competition

import (
	"sort"
	"strings"
	"time"
)

// Competition is one competition season available from the data provider.
type Competition struct {
	ID         int64  `json:"competition_id"`
	SeasonID   int64  `json:"season_id"`
	Name       string `json:"competition_name"`
	SeasonName string `json:"season_name"`
	Country    string `json:"country_name"`
	Gender     string `json:"competition_gender,omitempty"`
}

type Match struct {
	ID            int64     `json:"match_id"`
	CompetitionID int64     `json:"competition_id"`
	SeasonID      int64     `json:"season_id"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	MatchDate     time.Time `json:"match_date"`
	HomeScore     *int      `json:"home_score,omitempty"`
	AwayScore     *int      `json:"away_score,omitempty"`
	Stage         string    `json:"stage,omitempty"`
}

func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// RecentForTeam returns up to limit matches the team played, newest first.
// Matches on the same date keep their listing order.
func RecentForTeam(matches []Match, team string, limit int) []Match {
	team = strings.TrimSpace(team)
	if team == "" || limit <= 0 {
		return []Match{}
	}

	out := make([]Match, 0, limit)
	for _, m := range matches {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.After(out[j].MatchDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TeamNames lists the distinct home and away team names, sorted.
func TeamNames(matches []Match) []string {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		for _, name := range []string{m.HomeTeam, m.AwayTeam} {
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
