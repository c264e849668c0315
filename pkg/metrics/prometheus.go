package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack",
			Subsystem: "advisor",
			Name:      "runs_total",
			Help:      "Recommendation runs by outcome",
		},
		[]string{"status"},
	)

	fetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack",
			Subsystem: "advisor",
			Name:      "fetch_failures_total",
			Help:      "Absorbed market and news fetch failures",
		},
		[]string{"provider"},
	)

	modelLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fintrack",
			Subsystem: "advisor",
			Name:      "model_duration_seconds",
			Help:      "Duration of model completion calls",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)
)

// RecordRun counts a finished run. status is "ok" or "error".
func RecordRun(status string) {
	runsTotal.WithLabelValues(status).Inc()
}

func RecordFetchFailure(provider string) {
	fetchFailures.WithLabelValues(provider).Inc()
}

// RecordModelCall observes the latency of one model request.
func RecordModelCall(provider, status string, seconds float64) {
	modelLatency.WithLabelValues(provider, status).Observe(seconds)
}
