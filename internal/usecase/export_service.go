package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/valyala/bytebufferpool"
)

type CSVExport struct {
	Filename string
	Body     []byte
	Rows     int
	Warnings []string
}

type ExportService struct {
	events teamEventsLoader
}

func NewExportService(events teamEventsLoader) *ExportService {
	return &ExportService{events: events}
}

// TeamEventsCSV renders the team's normalized event table as CSV.
func (s *ExportService) TeamEventsCSV(ctx context.Context, query TeamQuery) (CSVExport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.TeamEventsCSV", teamAttrs(query)...)
	defer span.End()

	if s.events == nil {
		return CSVExport{}, fmt.Errorf("%w: event loader is not configured", ErrDependencyUnavailable)
	}
	if query.MaxMatches == 0 {
		query.MaxMatches = DefaultAnalysisMatches
	}
	loaded, err := s.events.LoadTeamEvents(ctx, query)
	if err != nil {
		return CSVExport{}, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := matchevent.WriteCSV(buf, loaded.Events); err != nil {
		return CSVExport{}, fmt.Errorf("write events csv: %w", err)
	}

	return CSVExport{
		Filename: csvFilename(loaded.Team),
		Body:     append([]byte(nil), buf.B...),
		Rows:     len(loaded.Events),
		Warnings: loaded.Warnings,
	}, nil
}

func csvFilename(team string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(team))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "team"
	}
	return name + "_events.csv"
}
