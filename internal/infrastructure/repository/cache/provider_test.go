package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	competitionmock "github.com/merlocpr-creator/tacticxai-mvp/internal/mocks/domain/competition"
	basecache "github.com/merlocpr-creator/tacticxai-mvp/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestProvider_ListMatchesIsCached(t *testing.T) {
	ctx := context.Background()
	next := competitionmock.NewProvider(t)
	matches := []competition.Match{{ID: 3942819, HomeTeam: "Spain", AwayTeam: "England"}}
	payload := rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityMatches, "55/282", []byte(`[]`), time.Now())

	next.On("ListMatches", mock.Anything, int64(55), int64(282)).Return(matches, []rawdata.Payload{payload}, nil).Once()

	provider := NewProvider(next, basecache.NewStore(time.Minute))

	first, payloads, err := provider.ListMatches(ctx, 55, 282)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first) != 1 || len(payloads) != 1 {
		t.Fatalf("unexpected first result: matches=%d payloads=%d", len(first), len(payloads))
	}

	first[0].HomeTeam = "mutated"
	second, payloads, err := provider.ListMatches(ctx, 55, 282)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if second[0].HomeTeam != "Spain" {
		t.Fatalf("cached value must not be shared with callers")
	}
	if len(payloads) != 0 {
		t.Fatalf("expected no payloads from a cache hit, got %d", len(payloads))
	}
}

func TestProvider_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := competitionmock.NewProvider(t)
	next.On("ListCompetitions", mock.Anything).Return(nil, nil, errors.New("status=502")).Once()
	next.On("ListCompetitions", mock.Anything).Return([]competition.Competition{{ID: 43, SeasonID: 3}}, []rawdata.Payload(nil), nil).Once()

	provider := NewProvider(next, basecache.NewStore(time.Minute))
	if _, _, err := provider.ListCompetitions(ctx); err == nil {
		t.Fatalf("expected first call to fail")
	}
	items, _, err := provider.ListCompetitions(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected second call to reach the provider, items=%v err=%v", items, err)
	}
}

func TestProvider_FetchEventsPassesThrough(t *testing.T) {
	next := competitionmock.NewProvider(t)
	next.On("FetchEvents", mock.Anything, int64(7)).Return(nil, rawdata.Payload{}, nil).Twice()

	provider := NewProvider(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		if _, _, err := provider.FetchEvents(context.Background(), 7); err != nil {
			t.Fatalf("fetch events: %v", err)
		}
	}
}
