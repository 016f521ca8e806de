package matchevent

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	minute := 57
	events := []EventRecord{
		{
			EventType:     TypeShot,
			TeamName:      "Bayer Leverkusen",
			PlayerName:    "Florian Wirtz",
			ExpectedGoals: xg(0.125),
			Location:      &Location{X: 104.5, Y: 31},
			Minute:        &minute,
			MatchID:       3895302,
		},
		{EventType: "Starting XI", TeamName: "Bayer Leverkusen, 04", Formation: "3-4-2-1"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, events); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("read csv back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	wantShot := []string{"Shot", "Bayer Leverkusen", "Florian Wirtz", "0.125", "104.5", "31", "57", "3895302", ""}
	if strings.Join(rows[1], "|") != strings.Join(wantShot, "|") {
		t.Fatalf("unexpected shot row: %v", rows[1])
	}
	if rows[2][1] != "Bayer Leverkusen, 04" || rows[2][3] != "" || rows[2][8] != "3-4-2-1" {
		t.Fatalf("unexpected lineup row: %v", rows[2])
	}
}

func TestWriteCSV_EmptyTableWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(CSVHeader, ",") {
		t.Fatalf("unexpected csv: %q", got)
	}
}
