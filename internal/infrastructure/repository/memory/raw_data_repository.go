package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
)

type rawDataKey struct {
	source     string
	entityType string
	entityKey  string
}

// RawDataRepository keeps archived provider payloads for runs without a database.
type RawDataRepository struct {
	mu    sync.RWMutex
	items map[rawDataKey]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{items: make(map[rawDataKey]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := keyOf(item.Source, item.EntityType, item.EntityKey)
		if key.entityType == "" || key.entityKey == "" {
			continue
		}
		if existing, ok := r.items[key]; ok && existing.PayloadHash == item.PayloadHash {
			continue
		}
		r.items[key] = item
	}

	return nil
}

func (r *RawDataRepository) Get(_ context.Context, source, entityType, entityKey string) (rawdata.Payload, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[keyOf(source, entityType, entityKey)]
	return item, ok, nil
}

func (r *RawDataRepository) Delete(_ context.Context, source, entityType, entityKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, keyOf(source, entityType, entityKey))
	return nil
}

func (r *RawDataRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func keyOf(source, entityType, entityKey string) rawDataKey {
	return rawDataKey{
		source:     strings.TrimSpace(source),
		entityType: strings.TrimSpace(entityType),
		entityKey:  strings.TrimSpace(entityKey),
	}
}
