package rawdata

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
	Get(ctx context.Context, source, entityType, entityKey string) (Payload, bool, error)
	Delete(ctx context.Context, source, entityType, entityKey string) error
}
