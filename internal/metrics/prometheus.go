package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "granulo"

type Prometheus struct {
	Stages      *prometheus.CounterVec
	Iterations  *prometheus.HistogramVec
	Cardinality *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stages",
				Help:      "pipeline stage executions",
			}, []string{"stage", "status"}),
		Iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clustering_iterations",
				Help:      "fuzzy c-means iterations per clustering",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			}, []string{"state"}),
		Cardinality: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cardinality",
				Help:      "sigma-count of every granule",
			}, []string{"set", "granule"}),
	}
}
