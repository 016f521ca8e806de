// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tacticai"

// Recorder owns a registry and the collectors registered on it. A nil *Recorder is a no-op.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	upstreamRequests    *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	circuitState        *prometheus.GaugeVec
	cacheLookups        *prometheus.CounterVec
	eventsNormalized    prometheus.Counter
	recommendations     *prometheus.CounterVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		upstreamRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Calls to external providers by outcome.",
		}, []string{"provider", "operation", "outcome"}),
		upstreamDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls to external providers.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "operation"}),
		circuitState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "circuit_open",
			Help:      "1 while the provider circuit breaker rejects calls, 0.5 half open, 0 closed.",
		}, []string{"provider"}),
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by store and result.",
		}, []string{"store", "result"}),
		eventsNormalized: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "normalized_total",
			Help:      "Event records produced by the normalizer.",
		}),
		recommendations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tactics",
			Name:      "recommendations_total",
			Help:      "Formations returned by the recommender.",
		}, []string{"formation"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveUpstream(provider, operation string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.upstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	r.upstreamDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

func (r *Recorder) CircuitStateChanged(provider, state string) {
	if r == nil {
		return
	}
	value := 0.0
	switch state {
	case "open":
		value = 1
	case "half_open":
		value = 0.5
	}
	r.circuitState.WithLabelValues(provider).Set(value)
}

func (r *Recorder) CacheHit(store string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(store, "hit").Inc()
}

func (r *Recorder) CacheMiss(store string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(store, "miss").Inc()
}

func (r *Recorder) AddNormalizedEvents(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.eventsNormalized.Add(float64(n))
}

func (r *Recorder) ObserveRecommendation(formation string) {
	if r == nil {
		return
	}
	r.recommendations.WithLabelValues(formation).Inc()
}
