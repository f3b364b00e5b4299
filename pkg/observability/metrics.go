package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/commandbar/pkg/derive"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "commandbar"

// Metrics groups the collectors of one engine.
type Metrics struct {
	registry *prometheus.Registry

	recomputes *prometheus.CounterVec
	hits       *prometheus.CounterVec
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, together with the Go runtime
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "derivation",
			Name:      "recomputes_total",
			Help:      "Number of times a derivation ran its combiner",
		}, []string{"derivation"}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "derivation",
			Name:      "hits_total",
			Help:      "Number of times a derivation served its cached output",
		}, []string{"derivation"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intent",
			Name:      "dispatches_total",
			Help:      "Intents handed to the sink, by type and outcome",
		}, []string{"type", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "intent",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent in the intent sink",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"type"}),
	}
	m.registry.MustRegister(
		m.recomputes,
		m.hits,
		m.dispatches,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry holding every collector, for callers adding their own.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns derivation hooks that feed the recompute and hit counters.
func (m *Metrics) Hooks() derive.Hooks {
	return derive.Hooks{
		OnRecompute: func(name string) {
			m.recomputes.WithLabelValues(name).Inc()
		},
		OnHit: func(name string) {
			m.hits.WithLabelValues(name).Inc()
		},
	}
}

// Sink wraps next so every dispatch is counted and timed.
func (m *Metrics) Sink(next ports.IntentSink) ports.IntentSink {
	return ports.SinkFunc(func(ctx context.Context, in intent.Intent) error {
		start := time.Now()
		err := next.Dispatch(ctx, in)
		m.duration.WithLabelValues(in.Type()).Observe(time.Since(start).Seconds())

		status := "ok"
		if err != nil {
			status = "error"
		}
		m.dispatches.WithLabelValues(in.Type(), status).Inc()
		return err
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
