package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankrollStateSettle(t *testing.T) {
	state := NewBankrollState(1000, true)

	gain := state.Settle(7, 100, 2.5, true)
	assert.Equal(t, 150.0, gain)
	assert.Equal(t, 1150.0, state.CurrentBankroll)

	gain = state.Settle(8, 40, 1.8, false)
	assert.Equal(t, -40.0, gain)
	assert.Equal(t, 1110.0, state.CurrentBankroll)

	require.Len(t, state.Ledger, 2)
	assert.Equal(t, 2, state.Ledger[1].Sequence)
	assert.Equal(t, 1110.0, state.Ledger[1].Bankroll)
	assert.Equal(t, 110.0, state.Gain())
}

func TestBankrollStateLedgerRowBeforeInsolvency(t *testing.T) {
	state := NewBankrollState(10, true)
	state.Settle(1, 10, -1, true)

	assert.True(t, state.Insolvent())
	require.Len(t, state.Ledger, 1)
	assert.Equal(t, -10.0, state.Ledger[0].Bankroll)
}

func TestBankrollStateNoLedger(t *testing.T) {
	state := NewBankrollState(10, false)
	state.Settle(1, 5, 2, true)
	assert.Nil(t, state.Ledger)
}

// The loss update is the else branch of the win update. Both extremes start
// at zero, so a negative gain never takes the win branch and every loss is
// still observed.
func TestBankrollStateBiggestLossElseBranch(t *testing.T) {
	tests := []struct {
		name        string
		gains       []float64
		wantWin     float64
		wantLoss    float64
		wantBetsWon int
	}{
		{name: "loss first", gains: []float64{-20, 30}, wantWin: 30, wantLoss: -20, wantBetsWon: 1},
		{name: "win then loss", gains: []float64{50, -30, -10}, wantWin: 50, wantLoss: -30, wantBetsWon: 1},
		{name: "only losses", gains: []float64{-5, -15, -10}, wantWin: 0, wantLoss: -15, wantBetsWon: 0},
		{name: "zero gain counts as neither", gains: []float64{0, 0}, wantWin: 0, wantLoss: 0, wantBetsWon: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewBankrollState(1000, false)
			for _, gain := range tt.gains {
				state.Track(10, gain)
			}
			assert.Equal(t, tt.wantWin, state.BiggestWin)
			assert.Equal(t, tt.wantLoss, state.BiggestLoss)
			assert.Equal(t, tt.wantBetsWon, state.BetsWon)
			assert.Equal(t, len(tt.gains), state.BetsMade)
		})
	}
}

func TestCalculateStatsRounding(t *testing.T) {
	state := NewBankrollState(1000, false)
	state.Track(12.5, 12.5)
	state.Track(12.5, -12.5)
	state.CurrentBankroll = 1000

	stats := CalculateStats(state, 8)
	// 12.5 rounds half to even.
	assert.Equal(t, 12.0, stats.AverageBet)
	assert.Equal(t, 0.75, stats.NoBets)
	assert.Equal(t, 0.125, stats.BetsWon)
	assert.Equal(t, 0.125, stats.BetsLost)
	assert.Equal(t, 0.0, stats.AverageGain)
}
