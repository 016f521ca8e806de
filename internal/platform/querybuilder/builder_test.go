package querybuilder

import (
	"reflect"
	"testing"
	"time"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name      string
		build     func() (string, []any, error)
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "select live payload",
			build: Select("entity_key", "payload").
				From("raw_data_payloads").
				Where(Eq("source", "statsbomb"), IsNull("deleted_at")).
				OrderBy("fetched_at DESC").
				Limit(1).
				ToSQL,
			wantQuery: "SELECT entity_key, payload FROM raw_data_payloads WHERE source = $1 AND deleted_at IS NULL ORDER BY fetched_at DESC LIMIT 1",
			wantArgs:  []any{"statsbomb"},
		},
		{
			name: "soft delete",
			build: Update("raw_data_payloads").
				SetRaw("deleted_at", "NOW()").
				Where(Eq("entity_type", "events"), Eq("entity_key", "3788741")).
				ToSQL,
			wantQuery: "UPDATE raw_data_payloads SET deleted_at = NOW() WHERE entity_type = $1 AND entity_key = $2",
			wantArgs:  []any{"events", "3788741"},
		},
		{
			name: "bound and raw sets share numbering",
			build: Update("raw_data_payloads").
				Set("payload_hash", "abc").
				SetRaw("ingested_at", "NOW()").
				Where(Eq("entity_key", "7")).
				ToSQL,
			wantQuery: "UPDATE raw_data_payloads SET payload_hash = $1, ingested_at = NOW() WHERE entity_key = $2",
			wantArgs:  []any{"abc", "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if query != tt.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tt.wantQuery, query)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	if _, _, err := Select().From("raw_data_payloads").ToSQL(); err == nil {
		t.Fatalf("expected error for select without columns")
	}
	if _, _, err := Select("payload").ToSQL(); err == nil {
		t.Fatalf("expected error for select without table")
	}
	if _, _, err := Update("raw_data_payloads").ToSQL(); err == nil {
		t.Fatalf("expected error for update without sets")
	}
}

type payloadRow struct {
	Source    string    `db:"source"`
	EntityKey string    `db:"entity_key,omitempty"`
	FetchedAt time.Time `db:"fetched_at"`
	Ignored   string    `db:"-"`
	internal  string
}

func TestInsertModels(t *testing.T) {
	at := time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC)
	rows := []payloadRow{
		{Source: "statsbomb", EntityKey: "1", FetchedAt: at, Ignored: "x", internal: "y"},
		{Source: "statsbomb", EntityKey: "2", FetchedAt: at},
	}

	query, args, err := InsertModels("raw_data_payloads", rows, " ON CONFLICT (source, entity_key) DO NOTHING ")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO raw_data_payloads (source, entity_key, fetched_at) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (source, entity_key) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 || args[3] != "statsbomb" || args[4] != "2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[payloadRow]("raw_data_payloads", nil, ""); err == nil {
		t.Fatalf("expected error for empty rows")
	}
	if _, _, err := InsertModels("raw_data_payloads", []int{1}, ""); err == nil {
		t.Fatalf("expected error for non-struct rows")
	}
}
