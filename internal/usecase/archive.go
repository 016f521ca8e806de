package usecase

import (
	"context"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
)

// payloadArchive stores provider payloads when a repository is configured. Archive failures
// are logged and never fail the caller.
type payloadArchive struct {
	repo   rawdata.Repository
	logger *logging.Logger
}

func (a payloadArchive) store(ctx context.Context, payloads ...rawdata.Payload) {
	if a.repo == nil {
		return
	}
	items := make([]rawdata.Payload, 0, len(payloads))
	for _, p := range payloads {
		if p.Empty() || p.EntityKey == "" {
			continue
		}
		items = append(items, p)
	}
	if len(items) == 0 {
		return
	}
	if err := a.repo.UpsertMany(ctx, items); err != nil {
		a.logger.WarnContext(ctx, "archive raw payloads failed", "count", len(items), "error", err)
	}
}

func (a payloadArchive) load(ctx context.Context, entityType, entityKey string) (rawdata.Payload, bool) {
	if a.repo == nil {
		return rawdata.Payload{}, false
	}
	payload, ok, err := a.repo.Get(ctx, rawdata.SourceStatsBomb, entityType, entityKey)
	if err != nil {
		a.logger.WarnContext(ctx, "load archived payload failed",
			"entity_type", entityType,
			"entity_key", entityKey,
			"error", err,
		)
		return rawdata.Payload{}, false
	}
	return payload, ok && !payload.Empty()
}

func (a payloadArchive) discard(ctx context.Context, entityType, entityKey string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Delete(ctx, rawdata.SourceStatsBomb, entityType, entityKey); err != nil {
		a.logger.WarnContext(ctx, "discard archived payload failed",
			"entity_type", entityType,
			"entity_key", entityKey,
			"error", err,
		)
	}
}
