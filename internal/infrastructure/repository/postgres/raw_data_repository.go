package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	qb "github.com/merlocpr-creator/tacticxai-mvp/internal/platform/querybuilder"
)

const rawDataTable = "raw_data_payloads"

// upsertBatchSize keeps each statement well under the postgres bind parameter limit.
const upsertBatchSize = 200

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(items); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(items))
		models := make([]rawDataPayloadInsertModel, 0, end-start)
		for _, item := range dedupePayloads(items[start:end]) {
			models = append(models, rawDataPayloadInsertModel{
				Source:      item.Source,
				EntityType:  item.EntityType,
				EntityKey:   item.EntityKey,
				Payload:     item.PayloadJSON,
				PayloadHash: item.PayloadHash,
				FetchedAt:   item.FetchedAt,
			})
		}

		query, args, err := qb.InsertModels(rawDataTable, models, `ON CONFLICT (source, entity_type, entity_key) WHERE deleted_at IS NULL
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    ingested_at = NOW()
WHERE raw_data_payloads.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash`)
		if err != nil {
			return fmt.Errorf("build upsert raw payload query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw payloads batch=%d..%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}

	return nil
}

func (r *RawDataRepository) Get(ctx context.Context, source, entityType, entityKey string) (rawdata.Payload, bool, error) {
	query, args, err := qb.Select("source", "entity_type", "entity_key", "payload", "payload_hash", "fetched_at").
		From(rawDataTable).
		Where(
			qb.Eq("source", source),
			qb.Eq("entity_type", entityType),
			qb.Eq("entity_key", entityKey),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return rawdata.Payload{}, false, fmt.Errorf("build get raw payload query: %w", err)
	}

	var row rawDataPayloadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rawdata.Payload{}, false, nil
		}
		return rawdata.Payload{}, false, fmt.Errorf("get raw payload entity=%s key=%s: %w", entityType, entityKey, err)
	}

	return rawdata.Payload{
		Source:      row.Source,
		EntityType:  row.EntityType,
		EntityKey:   row.EntityKey,
		PayloadJSON: row.Payload,
		PayloadHash: row.PayloadHash,
		FetchedAt:   row.FetchedAt.UTC(),
	}, true, nil
}

// Delete soft deletes the live payload for the key.
func (r *RawDataRepository) Delete(ctx context.Context, source, entityType, entityKey string) error {
	query, args, err := qb.Update(rawDataTable).
		SetRaw("deleted_at", "NOW()").
		Where(
			qb.Eq("source", source),
			qb.Eq("entity_type", entityType),
			qb.Eq("entity_key", entityKey),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete raw payload query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete raw payload entity=%s key=%s: %w", entityType, entityKey, err)
	}
	return nil
}

// dedupePayloads keeps the last payload per key; postgres rejects one statement touching a row twice.
func dedupePayloads(items []rawdata.Payload) []rawdata.Payload {
	index := make(map[[3]string]int, len(items))
	out := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		key := [3]string{item.Source, item.EntityType, item.EntityKey}
		if i, ok := index[key]; ok {
			out[i] = item
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

type rawDataPayloadInsertModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

type rawDataPayloadTableModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
