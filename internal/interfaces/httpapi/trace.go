package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("tacticai/internal/interfaces/httpapi")

// startSpan opens a child span for handler work, tagged with the request id. Helpers and
// untraced requests (health, metrics) get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}

	var opts []trace.SpanStartOption
	if id := requestIDFromContext(ctx); id != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("request.id", id)))
	}
	return apiTracer.Start(ctx, name, opts...)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
