// Package metrics defines simulation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Simulation counter vectors
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_runs_total",
		Help:      "Total number of bankroll simulation runs by status",
	}, []string{"status"})
	OptimizerCandidatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optimizer_candidates_total",
		Help:      "Stake-policy candidates evaluated by the optimizer by outcome",
	}, []string{"outcome"})
)

// Simulation histograms
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of a single bankroll simulation run",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

// Simulation gauges
var (
	BestPolicyGain = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "best_policy_gain",
		Help:      "Total gain of the best stake policy found by the latest optimization",
	})
	OracleCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "oracle_cache_hit_ratio",
		Help:      "Outcome oracle prediction cache hit ratio",
	})
)

// RecordSimulationRun records a simulation run.
// status should be one of: "success", "insolvent", "no_bets", "error"
func RecordSimulationRun(status string, durationSeconds float64) {
	SimulationRunsTotal.WithLabelValues(status).Inc()
	SimulationDuration.Observe(durationSeconds)
}

// RecordOptimizerCandidate records a grid candidate outcome ("accepted" or "rejected").
func RecordOptimizerCandidate(outcome string) {
	OptimizerCandidatesTotal.WithLabelValues(outcome).Inc()
}

// UpdateBestPolicyGain sets the best gain gauge.
func UpdateBestPolicyGain(gain float64) {
	BestPolicyGain.Set(gain)
}

// UpdateOracleCacheHitRatio sets the oracle cache hit ratio gauge.
func UpdateOracleCacheHitRatio(ratio float64) {
	OracleCacheHitRatio.Set(ratio)
}
