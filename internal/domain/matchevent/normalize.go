package matchevent

import (
	"math"
	"strconv"
	"strings"
)

// Normalize flattens provider event records. Missing or malformed fields become
// nil/empty; no record is dropped. Records already in the flat shape produced by
// EventRecord.Raw pass through unchanged.
func Normalize(raw []Raw) []EventRecord {
	out := make([]EventRecord, 0, len(raw))
	for _, item := range raw {
		out = append(out, NormalizeOne(item))
	}
	return out
}

func NormalizeOne(item Raw) EventRecord {
	if item == nil {
		return EventRecord{}
	}

	record := EventRecord{
		EventType:     firstName(item, "event_type", "type_name", "type"),
		TeamName:      firstName(item, "team_name", "team"),
		PlayerName:    firstName(item, "player_name", "player"),
		ExpectedGoals: extractExpectedGoals(item),
		Location:      extractLocation(item["location"]),
		Formation:     extractFormation(item),
	}
	if minute, ok := asInt64(item["minute"]); ok && minute >= 0 {
		value := int(minute)
		record.Minute = &value
	}
	if matchID, ok := asInt64(item["match_id"]); ok {
		record.MatchID = matchID
	}

	return record
}

func extractExpectedGoals(item Raw) *float64 {
	if raw, ok := firstPresent(item, "expected_goals", "shot_statsbomb_xg"); ok {
		if value, ok := validExpectedGoals(raw); ok {
			return &value
		}
	}
	if shot, ok := item["shot"].(map[string]any); ok {
		if value, ok := validExpectedGoals(shot["statsbomb_xg"]); ok {
			return &value
		}
	}
	return nil
}

func validExpectedGoals(raw any) (float64, bool) {
	value, ok := asFloat64(raw)
	if !ok || value < 0 {
		return 0, false
	}
	return value, true
}

func extractLocation(raw any) *Location {
	var pair []float64
	switch typed := raw.(type) {
	case []float64:
		pair = typed
	case []any:
		pair = make([]float64, 0, len(typed))
		for _, item := range typed {
			value, ok := asFloat64(item)
			if !ok {
				return nil
			}
			pair = append(pair, value)
		}
	case *Location:
		if typed == nil {
			return nil
		}
		pair = []float64{typed.X, typed.Y}
	case Location:
		pair = []float64{typed.X, typed.Y}
	default:
		return nil
	}
	if len(pair) != 2 || !isFinite(pair[0]) || !isFinite(pair[1]) {
		return nil
	}
	return &Location{X: pair[0], Y: pair[1]}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func extractFormation(item Raw) string {
	if value := formationLabel(item["formation"]); value != "" {
		return value
	}
	if tactics, ok := item["tactics"].(map[string]any); ok {
		return formationLabel(tactics["formation"])
	}
	return ""
}

// formationLabel renders StatsBomb digit formations (433, "4231") as "4-3-3" style
// labels and leaves any other label untouched.
func formationLabel(raw any) string {
	var label string
	switch typed := raw.(type) {
	case string:
		label = strings.TrimSpace(typed)
	default:
		value, ok := asInt64(typed)
		if !ok || value <= 0 {
			return ""
		}
		label = strconv.FormatInt(value, 10)
	}
	if label == "" || !isDigits(label) {
		return label
	}

	parts := make([]string, 0, len(label))
	for _, r := range label {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, "-")
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
