package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StakePolicy is one point of the optimizer grid
type StakePolicy struct {
	MinBet        float64 `db:"min_bet_limit" json:"min_bet_limit"`
	MaxBet        float64 `db:"max_bet_limit" json:"max_bet_limit"`
	MinConfidence float64 `db:"min_prediction_confidence" json:"min_prediction_confidence"`
}

// Validate checks the policy bounds
func (p StakePolicy) Validate() error {
	if p.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %v", p.MinBet)
	}
	if p.MinBet > p.MaxBet {
		return fmt.Errorf("min bet %v exceeds max bet %v", p.MinBet, p.MaxBet)
	}
	if p.MinConfidence < 0 || p.MinConfidence >= 1 {
		return fmt.Errorf("min confidence must be in [0, 1), got %v", p.MinConfidence)
	}
	return nil
}

// String returns a compact policy label
func (p StakePolicy) String() string {
	return fmt.Sprintf("min=%g max=%g conf=%g", p.MinBet, p.MaxBet, p.MinConfidence)
}

// Wager is one row of the bet ledger
type Wager struct {
	RunID    uuid.UUID `db:"run_id" json:"-"`
	Sequence int       `db:"sequence" json:"sequence"`
	GameID   int64     `db:"game_id" json:"game_id"`
	Stake    float64   `db:"bet" json:"bet"`
	Odd      float64   `db:"odd" json:"odd"`
	Gain     float64   `db:"gain" json:"gain"`
	Bankroll float64   `db:"money" json:"money"`
}

// PolicyResult is one row of the optimizer results table
type PolicyResult struct {
	RunID       uuid.UUID   `db:"run_id" json:"run_id"`
	Policy      StakePolicy `json:"policy"`
	Gain        float64     `db:"gain" json:"gain"`
	BiggestWin  float64     `db:"biggest_win" json:"biggest_win"`
	BiggestLoss float64     `db:"biggest_loss" json:"biggest_loss"`
	AverageBet  float64     `db:"average_bet" json:"average_bet"`
	AverageGain float64     `db:"average_gain" json:"average_gain"`
	NoBets      float64     `db:"no_bets" json:"no_bets"`
	BetsWon     float64     `db:"bets_won" json:"bets_won"`
	BetsLost    float64     `db:"bets_lost" json:"bets_lost"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}
