package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	Success = "success"
	Failure = "failure"
	Skipped = "skipped"
)

// Observer is the process wide metrics collector.
var Observer = NewMetrics()

type Metrics struct {
	registry   *prometheus.Registry
	prometheus Prometheus
}

// NewMetrics creates a new set of metrics on its own registry.
func NewMetrics() *Metrics {
	p := NewPrometheusMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.Stages, p.Iterations, p.Cardinality)
	return &Metrics{
		registry:   registry,
		prometheus: p,
	}
}

// Stage counts a stage execution with the given status.
func (m *Metrics) Stage(stage, status string) {
	m.prometheus.Stages.WithLabelValues(stage, status).Inc()
}

// Iterations records the iterations of a clustering that ended in the given state.
func (m *Metrics) Iterations(state string, n int) {
	m.prometheus.Iterations.WithLabelValues(state).Observe(float64(n))
}

// Cardinality records the sigma-count of a granule.
func (m *Metrics) Cardinality(set, granule string, v float64) {
	m.prometheus.Cardinality.WithLabelValues(set, granule).Set(v)
}

// Handler exposes the metrics over http.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics on the given address, it blocks until the server fails.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	log.Info().Str("addr", addr).Msg("serving metrics")
	return http.ListenAndServe(addr, mux)
}
