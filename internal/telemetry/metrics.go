// Package telemetry exposes Prometheus counters/histograms for the
// decision core, grounded on FACorreiaa-loci-connect-api's router mounting
// promhttp.Handler() behind a config flag (cmd/api/router.go).
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelcore",
		Name:      "turns_total",
		Help:      "Conversational turns processed, by primary intent and final status.",
	}, []string{"intent", "status"})

	turnDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travelcore",
		Name:      "turn_duration_seconds",
		Help:      "End-to-end latency of one orchestrator turn.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"intent"})

	expertCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelcore",
		Name:      "expert_calls_total",
		Help:      "Expert dispatches, by expert type and outcome.",
	}, []string{"expert_type", "outcome"})

	expertLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travelcore",
		Name:      "expert_latency_seconds",
		Help:      "Latency of a single expert's Execute call.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"expert_type"})
)

// ObserveTurn records one finished orchestrator turn.
func ObserveTurn(intent string, status string, elapsed time.Duration) {
	turnsTotal.WithLabelValues(intent, status).Inc()
	turnDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
}

// ObserveExpert records one finished expert dispatch.
func ObserveExpert(expertType string, success bool, elapsed time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	expertCallsTotal.WithLabelValues(expertType, outcome).Inc()
	expertLatency.WithLabelValues(expertType).Observe(elapsed.Seconds())
}

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
