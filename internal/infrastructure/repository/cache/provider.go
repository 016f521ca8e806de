package cache

import (
	"context"
	"fmt"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	basecache "github.com/merlocpr-creator/tacticxai-mvp/internal/platform/cache"
)

// Provider caches the competition and match listings of next. Match events pass through;
// the event service caches them per team.
type Provider struct {
	next  competition.Provider
	cache *basecache.Store
}

func NewProvider(next competition.Provider, cache *basecache.Store) *Provider {
	return &Provider{next: next, cache: cache}
}

// ListCompetitions returns provider payloads only when the listing was fetched by this call.
func (p *Provider) ListCompetitions(ctx context.Context) ([]competition.Competition, []rawdata.Payload, error) {
	var payloads []rawdata.Payload
	items, err := basecache.Typed(ctx, p.cache, "competitions:list", func(ctx context.Context) ([]competition.Competition, error) {
		items, raw, err := p.next.ListCompetitions(ctx)
		if err != nil {
			return nil, err
		}
		payloads = raw
		return append([]competition.Competition(nil), items...), nil
	})
	if err != nil {
		return nil, nil, err
	}

	return append([]competition.Competition(nil), items...), payloads, nil
}

func (p *Provider) ListMatches(ctx context.Context, competitionID, seasonID int64) ([]competition.Match, []rawdata.Payload, error) {
	var payloads []rawdata.Payload
	key := fmt.Sprintf("matches:list:%d:%d", competitionID, seasonID)
	items, err := basecache.Typed(ctx, p.cache, key, func(ctx context.Context) ([]competition.Match, error) {
		items, raw, err := p.next.ListMatches(ctx, competitionID, seasonID)
		if err != nil {
			return nil, err
		}
		payloads = raw
		return append([]competition.Match(nil), items...), nil
	})
	if err != nil {
		return nil, nil, err
	}

	return append([]competition.Match(nil), items...), payloads, nil
}

func (p *Provider) FetchEvents(ctx context.Context, matchID int64) ([]matchevent.Raw, rawdata.Payload, error) {
	return p.next.FetchEvents(ctx, matchID)
}
