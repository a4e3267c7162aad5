package backtest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/football-edge/internal/models"
)

func sampleOptimization() *OptimizationResult {
	runID := uuid.New()
	policy := models.StakePolicy{MinBet: 10, MaxBet: 50, MinConfidence: 0.5}
	return &OptimizationResult{
		RunID: runID,
		Results: []models.PolicyResult{
			{RunID: runID, Policy: policy, Gain: 8, BiggestWin: 18, BiggestLoss: -10, AverageBet: 14, AverageGain: 4, NoBets: 0, BetsWon: 0.5, BetsLost: 0.5},
		},
		Best:      policy,
		BestStats: Stats{Gain: 8, BiggestWin: 18, BiggestLoss: -10, AverageBet: 14, AverageGain: 4, BetsWon: 0.5, BetsLost: 0.5, BetsMade: 2, BetsWonCount: 1, TotalGames: 2, FinalBankroll: 1008},
		Ledger: []models.Wager{
			{RunID: runID, Sequence: 1, GameID: 11, Stake: 10, Odd: 1.9, Gain: -10, Bankroll: 990},
			{RunID: runID, Sequence: 2, GameID: 12, Stake: 18, Odd: 2, Gain: 18, Bankroll: 1008},
		},
		Evaluated: 3,
		Rejected:  2,
	}
}

func TestBuildEquityCurve(t *testing.T) {
	curve := BuildEquityCurve(1000, sampleOptimization().Ledger)

	require.Len(t, curve, 3)
	assert.Equal(t, 1000.0, curve[0].Value)
	assert.InDelta(t, 0.01, curve[1].Drawdown, 1e-12)
	assert.Equal(t, 0.0, curve[2].Drawdown)
	assert.InDelta(t, 0.01, curve.MaxDrawdown(), 1e-12)
	assert.Equal(t, 1008.0, curve.Peak())
	assert.True(t, strings.HasPrefix(curve.ToCSV(), "sequence,game_id,value,drawdown\n0,0,1000.000000"))
}

func TestGenerateConsoleReport(t *testing.T) {
	report := GenerateConsoleReport(sampleOptimization(), 1000)

	assert.Contains(t, report, "Best Policy: min bet 10.00, max bet 50.00, min confidence 0.50")
	assert.Contains(t, report, "Candidates: 3 evaluated, 2 rejected")
	assert.Contains(t, report, "Bets Made: 2 of 2 games")
	assert.Contains(t, report, "Max Drawdown: 1.00%")
}

func TestWriteResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, sampleOptimization().Results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "min_bet_limit,max_bet_limit,min_prediction_confidence,gain,biggest_win,biggest_loss,average_bet,average_gain,no_bets,bets_won,bets_lost", lines[0])
	assert.Equal(t, "10,50,0.5,8,18,-10,14,4,0,0.5,0.5", lines[1])
}

func TestGenerateCSVExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	require.NoError(t, GenerateCSVExport(sampleOptimization(), dir))

	ledger, err := os.ReadFile(filepath.Join(dir, "ledger.csv"))
	require.NoError(t, err)
	assert.Equal(t, "game_id,bet,odd,gain,money\n11,10,1.9,-10,990\n12,18,2,18,1008\n", string(ledger))
	assert.FileExists(t, filepath.Join(dir, "results.csv"))
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "optimization.json")
	export := NewOptimizationExport(sampleOptimization(), DefaultGrid(), 1000)

	require.NoError(t, ExportToJSON(export, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"max_drawdown": 0.01`)
	assert.Contains(t, string(data), `"best_stats"`)

	assert.Error(t, ExportToJSON(export, ""))
}

type mockResultStore struct {
	mock.Mock
}

func (m *mockResultStore) SaveResults(ctx context.Context, results []models.PolicyResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *mockResultStore) SaveLedger(ctx context.Context, runID uuid.UUID, ledger []models.Wager) error {
	args := m.Called(ctx, runID, ledger)
	return args.Error(0)
}

func TestExportToDatabase(t *testing.T) {
	result := sampleOptimization()
	store := &mockResultStore{}
	store.On("SaveResults", mock.Anything, result.Results).Return(nil)
	store.On("SaveLedger", mock.Anything, result.RunID, result.Ledger).Return(nil)

	require.NoError(t, ExportToDatabase(context.Background(), result, store))
	store.AssertExpectations(t)

	assert.Error(t, ExportToDatabase(context.Background(), result, nil))
}
