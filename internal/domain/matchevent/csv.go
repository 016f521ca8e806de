package matchevent

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader lists the exported columns; location is split into its two axes.
var CSVHeader = []string{
	"event_type",
	"team_name",
	"player_name",
	"expected_goals",
	"location_x",
	"location_y",
	"minute",
	"match_id",
	"formation",
}

// WriteCSV writes one header row and one row per event. Null fields are empty cells.
func WriteCSV(w io.Writer, events []EventRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, e := range events {
		if err := writer.Write(csvRow(e)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(e EventRecord) []string {
	row := []string{e.EventType, e.TeamName, e.PlayerName, "", "", "", "", "", e.Formation}
	if e.ExpectedGoals != nil {
		row[3] = strconv.FormatFloat(*e.ExpectedGoals, 'f', -1, 64)
	}
	if e.Location != nil {
		row[4] = strconv.FormatFloat(e.Location.X, 'f', -1, 64)
		row[5] = strconv.FormatFloat(e.Location.Y, 'f', -1, 64)
	}
	if e.Minute != nil {
		row[6] = strconv.Itoa(*e.Minute)
	}
	if e.MatchID != 0 {
		row[7] = strconv.FormatInt(e.MatchID, 10)
	}
	return row
}
