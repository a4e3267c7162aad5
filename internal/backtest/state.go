package backtest

import (
	"github.com/yourusername/football-edge/internal/models"
)

// BankrollState tracks one simulation run
type BankrollState struct {
	StartingBankroll float64
	CurrentBankroll  float64
	BetsMade         int
	BetsWon          int
	BiggestWin       float64
	BiggestLoss      float64
	StakeSum         float64
	Ledger           []models.Wager

	recordLedger bool
}

// NewBankrollState initializes the state with a fresh bankroll
func NewBankrollState(startingBankroll float64, recordLedger bool) *BankrollState {
	state := &BankrollState{
		StartingBankroll: startingBankroll,
		CurrentBankroll:  startingBankroll,
		recordLedger:     recordLedger,
	}
	if recordLedger {
		state.Ledger = []models.Wager{}
	}
	return state
}

// Settle applies one wager and returns its gain. The ledger row is written
// before any insolvency check.
func (s *BankrollState) Settle(gameID int64, stake, odd float64, won bool) float64 {
	gain := -stake
	if won {
		gain = stake*odd - stake
	}
	s.CurrentBankroll += gain

	if s.recordLedger {
		s.Ledger = append(s.Ledger, models.Wager{
			Sequence: len(s.Ledger) + 1,
			GameID:   gameID,
			Stake:    stake,
			Odd:      odd,
			Gain:     gain,
			Bankroll: s.CurrentBankroll,
		})
	}
	return gain
}

// Insolvent reports whether the bankroll dropped below zero
func (s *BankrollState) Insolvent() bool {
	return s.CurrentBankroll < 0
}

// Track accumulates the per-bet statistics for a settled wager.
// The loss branch only runs when the gain did not set a new biggest win.
func (s *BankrollState) Track(stake, gain float64) {
	s.StakeSum += stake
	s.BetsMade++
	if gain > s.BiggestWin {
		s.BiggestWin = gain
	} else if gain < s.BiggestLoss {
		s.BiggestLoss = gain
	}
	if gain > 0 {
		s.BetsWon++
	}
}

// Gain returns the bankroll change since the start of the run
func (s *BankrollState) Gain() float64 {
	return s.CurrentBankroll - s.StartingBankroll
}
