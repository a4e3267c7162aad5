package backtest

import (
	"fmt"
)

// SettleOrder selects the order in which evaluation records are settled
type SettleOrder string

const (
	// SettleDataset keeps the caller's record order
	SettleDataset SettleOrder = "dataset"
	// SettleChronological stable-sorts records by game date
	SettleChronological SettleOrder = "chronological"
)

// Config holds bankroll simulation settings
type Config struct {
	StartingBankroll    float64
	BoostBandLow        float64
	BoostBandHigh       float64
	BoostFactor         float64
	BankrollCapFraction float64
	SettleOrder         SettleOrder
}

// DefaultConfig returns the simulation settings used when none are configured
func DefaultConfig() Config {
	return Config{
		StartingBankroll:    1000,
		BoostBandLow:        0.7,
		BoostBandHigh:       1.0,
		BoostFactor:         1.5,
		BankrollCapFraction: 0.75,
		SettleOrder:         SettleDataset,
	}
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if c.StartingBankroll <= 0 {
		return fmt.Errorf("starting bankroll must be positive")
	}
	if c.BoostBandLow > c.BoostBandHigh {
		return fmt.Errorf("boost band low %v exceeds high %v", c.BoostBandLow, c.BoostBandHigh)
	}
	if c.BoostFactor <= 0 {
		return fmt.Errorf("boost factor must be positive")
	}
	if c.BankrollCapFraction <= 0 || c.BankrollCapFraction > 1 {
		return fmt.Errorf("bankroll cap fraction must be in (0, 1]")
	}
	switch c.SettleOrder {
	case SettleDataset, SettleChronological:
	default:
		return fmt.Errorf("unknown settle order %q", c.SettleOrder)
	}
	return nil
}
