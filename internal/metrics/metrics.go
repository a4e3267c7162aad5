// Package metrics provides centralized Prometheus metrics registry for the pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "football_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Dataset metrics
var (
	DatasetGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_games_total",
		Help:      "Games processed by the dataset assembler by dataset kind and outcome",
	}, []string{"kind", "outcome"})
	DatasetBuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataset_build_duration_seconds",
		Help:      "Time spent assembling a dataset",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
)

// Ingestion metrics
var (
	IngestionRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestion_requests_total",
		Help:      "Football API requests by endpoint and status",
	}, []string{"endpoint", "status"})
	IngestedGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingested_games_total",
		Help:      "Games persisted by ingestion by table",
	}, []string{"table"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(DatasetGamesTotal)
		registry.MustRegister(DatasetBuildDuration)

		registry.MustRegister(IngestionRequestsTotal)
		registry.MustRegister(IngestedGamesTotal)

		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(OptimizerCandidatesTotal)
		registry.MustRegister(BestPolicyGain)
		registry.MustRegister(OracleCacheHitRatio)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordDatasetGame records one game seen by the assembler.
// kind is "training" or "evaluation", outcome is "accepted" or "dropped".
func RecordDatasetGame(kind, outcome string) {
	DatasetGamesTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordDatasetBuild records how long a dataset took to assemble.
func RecordDatasetBuild(kind string, durationSeconds float64) {
	DatasetBuildDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordIngestionRequest records a football API request.
func RecordIngestionRequest(endpoint, status string) {
	IngestionRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordIngestedGames records games written to a table.
func RecordIngestedGames(table string, count int) {
	IngestedGamesTotal.WithLabelValues(table).Add(float64(count))
}
