package backtest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	deep "github.com/patrikeh/go-deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/football-edge/internal/models"
	"github.com/yourusername/football-edge/internal/oracle"
)

func TestDefaultGridCandidates(t *testing.T) {
	candidates := DefaultGrid().Candidates()

	assert.Len(t, candidates, 120)
	assert.Equal(t, models.StakePolicy{MinBet: 10, MaxBet: 50, MinConfidence: 0.4}, candidates[0])
	assert.Equal(t, models.StakePolicy{MinBet: 10, MaxBet: 50, MinConfidence: 0.5}, candidates[1])
	assert.Equal(t, models.StakePolicy{MinBet: 10, MaxBet: 100, MinConfidence: 0.4}, candidates[8])
	assert.Equal(t, models.StakePolicy{MinBet: 75, MaxBet: 500, MinConfidence: 0.8}, candidates[len(candidates)-1])

	for _, c := range candidates {
		assert.LessOrEqual(t, c.MinBet, c.MaxBet)
		assert.NotEqual(t, models.StakePolicy{MinBet: 75, MaxBet: 50, MinConfidence: c.MinConfidence}, c)
	}
}

func winningRecords() []models.EvaluationRecord {
	return []models.EvaluationRecord{
		record(1, 1, models.ResultHomeWin, 2.0, day(1)),
		record(2, 1, models.ResultHomeWin, 2.0, day(2)),
	}
}

func newTestOptimizer(t *testing.T, o oracle.Oracle, grid Grid, workers int) *Optimizer {
	t.Helper()
	optimizer, err := NewOptimizer(newTestEvaluator(t, DefaultConfig(), o), grid, workers, quietLogger())
	require.NoError(t, err)
	return optimizer
}

func TestOptimizeSelectsHighestGain(t *testing.T) {
	grid := Grid{MinBets: []float64{10, 20}, MaxBets: []float64{50}, Confidences: []float64{0.5, 0.7}}
	optimizer := newTestOptimizer(t, constantOracle(models.Probabilities{0.6, 0.2, 0.2}), grid, 1)

	result, err := optimizer.Optimize(context.Background(), winningRecords())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Evaluated)
	assert.Equal(t, 2, result.Rejected)
	require.Len(t, result.Results, 2)
	assert.Equal(t, models.StakePolicy{MinBet: 10, MaxBet: 50, MinConfidence: 0.5}, result.Results[0].Policy)
	assert.Equal(t, models.StakePolicy{MinBet: 20, MaxBet: 50, MinConfidence: 0.5}, result.Results[1].Policy)
	assert.InDelta(t, 36, result.Results[0].Gain, 1e-9)
	assert.InDelta(t, 52, result.Results[1].Gain, 1e-9)

	assert.Equal(t, models.StakePolicy{MinBet: 20, MaxBet: 50, MinConfidence: 0.5}, result.Best)
	assert.InDelta(t, 52, result.BestStats.Gain, 1e-9)
	assert.Equal(t, result.Best, result.BestResult().Policy)

	require.Len(t, result.Ledger, 2)
	assert.NotEqual(t, uuid.Nil, result.RunID)
	for _, wager := range result.Ledger {
		assert.Equal(t, result.RunID, wager.RunID)
	}
	for _, row := range result.Results {
		assert.Equal(t, result.RunID, row.RunID)
	}
}

func TestOptimizeTiesGoToEarliestCandidate(t *testing.T) {
	// Confidence equals the threshold, so every policy stakes its minimum.
	grid := Grid{MinBets: []float64{10}, MaxBets: []float64{50, 100}, Confidences: []float64{0.5}}
	optimizer := newTestOptimizer(t, constantOracle(models.Probabilities{0.5, 0.3, 0.2}), grid, 1)

	result, err := optimizer.Optimize(context.Background(), winningRecords())
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, result.Results[0].Gain, result.Results[1].Gain)
	assert.Equal(t, models.StakePolicy{MinBet: 10, MaxBet: 50, MinConfidence: 0.5}, result.Best)
}

func TestOptimizeNoValidPolicy(t *testing.T) {
	grid := Grid{MinBets: []float64{10}, MaxBets: []float64{50}, Confidences: []float64{0.8, 0.9}}
	optimizer := newTestOptimizer(t, constantOracle(models.Probabilities{0.6, 0.2, 0.2}), grid, 1)

	_, err := optimizer.Optimize(context.Background(), winningRecords())
	assert.ErrorIs(t, err, ErrNoValidPolicy)
}

func TestOptimizeEmptyGrid(t *testing.T) {
	grid := Grid{MinBets: []float64{100}, MaxBets: []float64{50}, Confidences: []float64{0.5}}
	optimizer := newTestOptimizer(t, constantOracle(models.Probabilities{0.6, 0.2, 0.2}), grid, 1)

	_, err := optimizer.Optimize(context.Background(), winningRecords())
	assert.ErrorIs(t, err, ErrNoValidPolicy)
}

func TestOptimizeOracleFailureAborts(t *testing.T) {
	boom := errors.New("model offline")
	o := oracle.Func(func(context.Context, []float64) (models.Probabilities, error) {
		return models.Probabilities{}, boom
	})
	optimizer := newTestOptimizer(t, o, DefaultGrid(), 4)

	_, err := optimizer.Optimize(context.Background(), winningRecords())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNoValidPolicy)
}

func TestOptimizeConcurrentMatchesSequential(t *testing.T) {
	probs := map[int]models.Probabilities{
		1: {0.72, 0.18, 0.1},
		2: {0.2, 0.25, 0.55},
		3: {0.1, 0.62, 0.28},
		4: {0.41, 0.39, 0.2},
	}
	records := []models.EvaluationRecord{
		record(1, 1, models.ResultHomeWin, 1.7, day(1)),
		record(2, 2, models.ResultHomeWin, 2.9, day(2)),
		record(3, 3, models.ResultDraw, 3.3, day(3)),
		record(4, 4, models.ResultHomeWin, 2.2, day(4)),
		record(5, 2, models.ResultAwayWin, 2.6, day(5)),
		record(6, 1, models.ResultAwayWin, 4.1, day(6)),
	}
	o := oracle.Func(func(_ context.Context, features []float64) (models.Probabilities, error) {
		return probs[int(features[0])], nil
	})

	sequential, err := newTestOptimizer(t, o, DefaultGrid(), 1).Optimize(context.Background(), records)
	require.NoError(t, err)
	concurrent, err := newTestOptimizer(t, o, DefaultGrid(), 8).Optimize(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, sequential.Best, concurrent.Best)
	assert.Equal(t, sequential.BestStats, concurrent.BestStats)
	assert.Equal(t, sequential.Rejected, concurrent.Rejected)
	require.Len(t, concurrent.Results, len(sequential.Results))
	for i := range sequential.Results {
		assert.Equal(t, sequential.Results[i].Policy, concurrent.Results[i].Policy)
		assert.Equal(t, sequential.Results[i].Gain, concurrent.Results[i].Gain)
	}
}

func TestOptimizeConcurrentNeuralOracle(t *testing.T) {
	net, err := oracle.NewNeuralOracle(deep.NewNeural(oracle.NewClassifierConfig(3, 8)), 3)
	require.NoError(t, err)

	results := []models.Result{models.ResultHomeWin, models.ResultDraw, models.ResultAwayWin}
	records := make([]models.EvaluationRecord, 300)
	for i := range records {
		records[i] = record(int64(i+1), i%41-20, results[i%3], 1.5+float64(i%7)*0.4, day(1))
	}

	sequential, seqErr := newTestOptimizer(t, net, DefaultGrid(), 1).Optimize(context.Background(), records)
	concurrent, conErr := newTestOptimizer(t, net, DefaultGrid(), 8).Optimize(context.Background(), records)
	if seqErr != nil {
		require.ErrorIs(t, seqErr, ErrNoValidPolicy)
		assert.ErrorIs(t, conErr, ErrNoValidPolicy)
		return
	}
	require.NoError(t, conErr)

	assert.Equal(t, sequential.Best, concurrent.Best)
	assert.Equal(t, sequential.BestStats, concurrent.BestStats)
	require.Len(t, concurrent.Ledger, len(sequential.Ledger))
	for i := range sequential.Ledger {
		assert.Equal(t, sequential.Ledger[i].Bankroll, concurrent.Ledger[i].Bankroll)
	}
	require.Len(t, concurrent.Results, len(sequential.Results))
	for i := range sequential.Results {
		assert.Equal(t, sequential.Results[i].Policy, concurrent.Results[i].Policy)
		assert.Equal(t, sequential.Results[i].Gain, concurrent.Results[i].Gain)
	}
}

func TestNewOptimizerRequiresEvaluator(t *testing.T) {
	_, err := NewOptimizer(nil, DefaultGrid(), 1, nil)
	assert.Error(t, err)
}
