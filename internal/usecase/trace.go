package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("tacticai/internal/usecase")

// startUsecaseSpan only nests under an existing span; background work stays untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func teamAttrs(query TeamQuery) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("competition.id", query.CompetitionID),
		attribute.Int64("season.id", query.SeasonID),
		attribute.String("team.name", query.Team),
	}
}
