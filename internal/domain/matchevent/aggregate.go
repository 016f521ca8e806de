package matchevent

import (
	"math"
	"sort"
)

// FormationDisplayLimit caps formation frequency lists for display.
const FormationDisplayLimit = 5

// GroupKey selects the field an aggregation groups by.
type GroupKey string

const (
	GroupByPlayer GroupKey = "player"
	GroupByTeam   GroupKey = "team"
)

func (k GroupKey) Valid() bool {
	return k == GroupByPlayer || k == GroupByTeam
}

func (k GroupKey) of(e EventRecord) string {
	switch k {
	case GroupByTeam:
		return e.TeamName
	default:
		return e.PlayerName
	}
}

// TopByExpectedGoals sums shot xG per group and returns the n largest totals.
// Groups with equal totals keep first-seen order. Shots without xG add zero.
func TopByExpectedGoals(events []EventRecord, key GroupKey, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}

	order := make([]string, 0)
	totals := make(map[string]float64)
	for _, e := range events {
		if !e.IsShot() {
			continue
		}
		group := key.of(e)
		if group == "" {
			continue
		}
		if _, ok := totals[group]; !ok {
			order = append(order, group)
			totals[group] = 0
		}
		if e.ExpectedGoals != nil {
			totals[group] += *e.ExpectedGoals
		}
	}

	out := make([]Ranked, 0, len(order))
	for _, group := range order {
		out = append(out, Ranked{Key: group, Value: totals[group]})
	}
	return topRanked(out, n)
}

// TopMeanExpectedGoals returns the n players with the highest mean xG per shot.
// Players whose shots carry no xG are left out.
func TopMeanExpectedGoals(events []EventRecord, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}

	order := make([]string, 0)
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range events {
		if !e.IsShot() || e.PlayerName == "" || e.ExpectedGoals == nil {
			continue
		}
		if _, ok := counts[e.PlayerName]; !ok {
			order = append(order, e.PlayerName)
		}
		sums[e.PlayerName] += *e.ExpectedGoals
		counts[e.PlayerName]++
	}

	out := make([]Ranked, 0, len(order))
	for _, player := range order {
		out = append(out, Ranked{Key: player, Value: sums[player] / float64(counts[player])})
	}
	return topRanked(out, n)
}

// MeanExpectedGoals returns the mean xG over a player's shots. The boolean is false
// when the player has no shot with an xG value.
func MeanExpectedGoals(events []EventRecord, player string) (float64, bool) {
	if player == "" {
		return 0, false
	}

	var sum float64
	var count int
	for _, e := range events {
		if !e.IsShot() || e.PlayerName != player || e.ExpectedGoals == nil {
			continue
		}
		sum += *e.ExpectedGoals
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func CountByType(events []EventRecord, eventType string) int {
	if eventType == "" {
		return 0
	}
	count := 0
	for _, e := range events {
		if e.EventType == eventType {
			count++
		}
	}
	return count
}

// FormationFrequency counts formation labels, most frequent first, capped at limit.
// A non-positive limit falls back to FormationDisplayLimit.
func FormationFrequency(events []EventRecord, limit int) []FormationCount {
	if limit <= 0 {
		limit = FormationDisplayLimit
	}

	order := make([]string, 0)
	counts := make(map[string]int)
	for _, e := range events {
		if e.Formation == "" {
			continue
		}
		if _, ok := counts[e.Formation]; !ok {
			order = append(order, e.Formation)
		}
		counts[e.Formation]++
	}

	out := make([]FormationCount, 0, len(order))
	for _, formation := range order {
		out = append(out, FormationCount{Formation: formation, Count: counts[formation]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopPlayersByEventCount returns the n players involved in the most events.
func TopPlayersByEventCount(events []EventRecord, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}

	order := make([]string, 0)
	counts := make(map[string]int)
	for _, e := range events {
		if e.PlayerName == "" {
			continue
		}
		if _, ok := counts[e.PlayerName]; !ok {
			order = append(order, e.PlayerName)
		}
		counts[e.PlayerName]++
	}

	out := make([]Ranked, 0, len(order))
	for _, player := range order {
		out = append(out, Ranked{Key: player, Value: float64(counts[player])})
	}
	return topRanked(out, n)
}

// TotalExpectedGoals sums xG over shot events.
func TotalExpectedGoals(events []EventRecord) float64 {
	var total float64
	for _, e := range events {
		if e.IsShot() && e.ExpectedGoals != nil {
			total += *e.ExpectedGoals
		}
	}
	return total
}

// ShotLocations returns the coordinates of every located shot in input order.
func ShotLocations(events []EventRecord) []Location {
	out := make([]Location, 0)
	for _, e := range events {
		if e.IsShot() && e.Location != nil {
			out = append(out, *e.Location)
		}
	}
	return out
}

// Summarize builds the MatchSummary for one team's events.
func Summarize(team string, events []EventRecord) MatchSummary {
	matchIDs := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, e := range events {
		if e.MatchID == 0 {
			continue
		}
		if _, ok := seen[e.MatchID]; ok {
			continue
		}
		seen[e.MatchID] = struct{}{}
		matchIDs = append(matchIDs, e.MatchID)
	}

	return MatchSummary{
		Team:                    team,
		EventCount:              len(events),
		TotalShots:              CountByType(events, TypeShot),
		TotalExpectedGoals:      roundTo(TotalExpectedGoals(events), 4),
		PlayerMeanExpectedGoals: TopMeanExpectedGoals(events, math.MaxInt),
		Formations:              FormationFrequency(events, FormationDisplayLimit),
		MatchIDs:                matchIDs,
	}
}

func topRanked(items []Ranked, n int) []Ranked {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// FilterTeam keeps the events recorded for team, in input order.
func FilterTeam(events []EventRecord, team string) []EventRecord {
	out := make([]EventRecord, 0, len(events)/2)
	for _, e := range events {
		if e.TeamName == team {
			out = append(out, e)
		}
	}
	return out
}
