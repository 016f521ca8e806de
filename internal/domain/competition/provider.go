package competition

import (
	"context"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
)

// Provider reads competitions, matches and raw match events from a match data source.
// Every call also returns the raw payloads it decoded so callers can archive them.
type Provider interface {
	ListCompetitions(ctx context.Context) ([]Competition, []rawdata.Payload, error)
	ListMatches(ctx context.Context, competitionID, seasonID int64) ([]Match, []rawdata.Payload, error)
	FetchEvents(ctx context.Context, matchID int64) ([]matchevent.Raw, rawdata.Payload, error)
}
