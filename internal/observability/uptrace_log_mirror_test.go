package observability

import (
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health probe", msg: "http_request", args: []any{"http_path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http_request", args: []any{"status", 200, "http_path", "/metrics"}, want: true},
		{name: "api request", msg: "http_request", args: []any{"http_path", "/v1/tactics/tags"}},
		{name: "other event", msg: "statsbomb request failed", args: []any{"http_path", "/healthz"}},
		{name: "no path", msg: "http_request", args: []any{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSkipUptraceLog(tt.msg, tt.args); got != tt.want {
				t.Fatalf("shouldSkipUptraceLog(%q, %v)=%v want %v", tt.msg, tt.args, got, tt.want)
			}
		})
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"team", "Spain", "matches", 5, 42, uint8(3), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "team" || attrs[0].Value.AsString() != "Spain" {
		t.Fatalf("unexpected team attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "matches" || attrs[1].Value.AsInt64() != 5 {
		t.Fatalf("unexpected matches attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "arg_2" || attrs[2].Value.AsInt64() != 3 {
		t.Fatalf("expected positional key for non string key, got %+v", attrs[2])
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute: %+v", attrs[3])
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue(errors.New("boom"), 0); v.AsString() != "boom" {
		t.Fatalf("unexpected error value: %v", v)
	}
	if v := toOTelLogValue(0.42, 0); v.Kind() != otellog.KindFloat64 || v.AsFloat64() != 0.42 {
		t.Fatalf("unexpected float value: %v", v)
	}
	if v := toOTelLogValue([]string{"4-3-3", "3-5-2"}, 0); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("unexpected slice value: %v", v)
	}

	v := toOTelLogValue(map[string]any{"shots": 11, "xg": 1.7}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "shots" || items[1].Key != "xg" {
		t.Fatalf("expected sorted map items, got %+v", items)
	}
}

func TestToOTelSeverity(t *testing.T) {
	if toOTelSeverity(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("unexpected warn severity")
	}
	if toOTelSeverity(zapcore.FatalLevel) != otellog.SeverityFatal {
		t.Fatalf("unexpected fatal severity")
	}
}
