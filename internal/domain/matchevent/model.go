package matchevent

// Event type names used by the aggregations.
const (
	TypeShot        = "Shot"
	TypeCard        = "Card"
	TypeStartingXI  = "Starting XI"
	TypeTacticShift = "Tactical Shift"
)

// Raw is one provider event record as decoded from JSON.
type Raw = map[string]any

// Location is a pitch coordinate in provider units (StatsBomb: 120x80).
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EventRecord is one normalized match event. Optional fields are nil or empty when
// the provider record did not carry them.
type EventRecord struct {
	EventType     string    `json:"event_type"`
	TeamName      string    `json:"team_name"`
	PlayerName    string    `json:"player_name,omitempty"`
	ExpectedGoals *float64  `json:"expected_goals,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Minute        *int      `json:"minute,omitempty"`
	MatchID       int64     `json:"match_id"`
	Formation     string    `json:"formation,omitempty"`
}

func (e EventRecord) IsShot() bool {
	return e.EventType == TypeShot
}

// Raw renders the record in the flat shape accepted by Normalize.
func (e EventRecord) Raw() Raw {
	out := Raw{
		"event_type": e.EventType,
		"team_name":  e.TeamName,
		"match_id":   e.MatchID,
	}
	if e.PlayerName != "" {
		out["player_name"] = e.PlayerName
	}
	if e.ExpectedGoals != nil {
		out["expected_goals"] = *e.ExpectedGoals
	}
	if e.Location != nil {
		out["location"] = []any{e.Location.X, e.Location.Y}
	}
	if e.Minute != nil {
		out["minute"] = *e.Minute
	}
	if e.Formation != "" {
		out["formation"] = e.Formation
	}
	return out
}

// MatchSummary is the aggregated view over one team's events.
type MatchSummary struct {
	Team                    string           `json:"team"`
	EventCount              int              `json:"event_count"`
	TotalShots              int              `json:"total_shots"`
	TotalExpectedGoals      float64          `json:"total_expected_goals"`
	PlayerMeanExpectedGoals []Ranked         `json:"player_mean_expected_goals"`
	Formations              []FormationCount `json:"formations"`
	MatchIDs                []int64          `json:"match_ids"`
}

// Ranked is one grouped aggregate value.
type Ranked struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type FormationCount struct {
	Formation string `json:"formation"`
	Count     int    `json:"count"`
}
