package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const SourceStatsBomb = "statsbomb"

// Entity types archived from the match data provider.
const (
	EntityCompetitions = "competitions"
	EntityMatches      = "matches"
	EntityEvents       = "events"
)

// Payload is a raw provider response kept verbatim for replay.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}

// NewPayload builds a payload and fills its sha256 hash.
func NewPayload(source, entityType, entityKey string, body []byte, fetchedAt time.Time) Payload {
	return Payload{
		Source:      source,
		EntityType:  entityType,
		EntityKey:   entityKey,
		PayloadJSON: string(body),
		PayloadHash: Hash(body),
		FetchedAt:   fetchedAt.UTC(),
	}
}

func Hash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func (p Payload) Empty() bool {
	return p.PayloadJSON == ""
}
