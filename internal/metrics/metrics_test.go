package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordDatasetGame(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(DatasetGamesTotal.WithLabelValues("training", "dropped"))

	RecordDatasetGame("training", "dropped")
	RecordDatasetGame("training", "dropped")

	after := testutil.ToFloat64(DatasetGamesTotal.WithLabelValues("training", "dropped"))
	assert.Equal(t, before+2, after)
}

func TestRecordSimulationRun(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("insolvent"))

	assert.NotPanics(t, func() {
		RecordSimulationRun("insolvent", 0.002)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("insolvent")))
}

func TestUpdateBestPolicyGain(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name string
		gain float64
	}{
		{name: "profit", gain: 412.5},
		{name: "loss", gain: -120},
		{name: "flat", gain: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateBestPolicyGain(tt.gain)
			assert.Equal(t, tt.gain, testutil.ToFloat64(BestPolicyGain))
		})
	}
}

func TestRecordIngestedGames(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(IngestedGamesTotal.WithLabelValues("games"))
	RecordIngestedGames("games", 38)
	assert.Equal(t, before+38, testutil.ToFloat64(IngestedGamesTotal.WithLabelValues("games")))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordOptimizerCandidate("accepted")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "football_edge_optimizer_candidates_total")
}
