package rawdata

import (
	"testing"
	"time"
)

func TestNewPayload(t *testing.T) {
	fetchedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	p := NewPayload(SourceStatsBomb, EntityEvents, "3788741", []byte(`[{"id":"a"}]`), fetchedAt)

	if p.PayloadJSON != `[{"id":"a"}]` {
		t.Fatalf("unexpected payload body: %s", p.PayloadJSON)
	}
	if len(p.PayloadHash) != 64 || p.PayloadHash != Hash([]byte(`[{"id":"a"}]`)) {
		t.Fatalf("unexpected payload hash: %s", p.PayloadHash)
	}
	if p.FetchedAt.Location() != time.UTC || !p.FetchedAt.Equal(fetchedAt) {
		t.Fatalf("expected fetched_at normalized to UTC, got %s", p.FetchedAt)
	}
	if p.Empty() {
		t.Fatalf("payload with body must not be empty")
	}
	if !(Payload{}).Empty() {
		t.Fatalf("zero payload must be empty")
	}
}
