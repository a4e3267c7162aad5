// Package backtest replays evaluation records through a bankroll
// simulation and searches the stake-policy grid.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
	"github.com/yourusername/football-edge/internal/oracle"
)

var (
	// ErrNoResult marks a run that produced no usable statistics
	ErrNoResult = errors.New("no result")

	// ErrInsolvent indicates the bankroll fell below zero
	ErrInsolvent = errors.New("bankroll insolvent")

	// ErrNoBets indicates no record cleared the confidence threshold
	ErrNoBets = errors.New("no qualifying bets")
)

// Result is the outcome of a successful simulation run
type Result struct {
	Policy models.StakePolicy
	Stats  Stats
	Ledger []models.Wager
}

// Evaluator runs bankroll simulations against an oracle
type Evaluator struct {
	config Config
	oracle oracle.Oracle
	logger *logger.SimulationLogger
}

// NewEvaluator creates an evaluator
func NewEvaluator(cfg Config, o oracle.Oracle, log *logrus.Logger) (*Evaluator, error) {
	if o == nil {
		return nil, fmt.Errorf("oracle is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Evaluator{
		config: cfg,
		oracle: o,
		logger: logger.NewSimulationLogger(log),
	}, nil
}

// Config returns the simulation configuration
func (e *Evaluator) Config() Config {
	return e.config
}

// Evaluate simulates betting on every record under policy. Insolvency and
// an empty bet history return errors wrapping ErrNoResult; oracle
// failures are returned as-is.
func (e *Evaluator) Evaluate(ctx context.Context, records []models.EvaluationRecord, policy models.StakePolicy, recordLedger bool) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stake policy: %w", err)
	}

	start := time.Now()
	state := NewBankrollState(e.config.StartingBankroll, recordLedger)

	for _, record := range e.ordered(records) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		probs, err := e.oracle.Predict(ctx, record.Features.Floats())
		if err != nil {
			metrics.RecordSimulationRun("error", time.Since(start).Seconds())
			return nil, fmt.Errorf("predict game %d: %w", record.GameID, err)
		}

		predicted, confidence := probs.ArgMax()
		if confidence < policy.MinConfidence {
			continue
		}

		stake := e.config.DetermineStake(confidence, policy)
		if stake > state.CurrentBankroll {
			stake = state.CurrentBankroll * e.config.BankrollCapFraction
		}

		gain := state.Settle(record.GameID, stake, record.ResultOdd, predicted == record.Outcome())
		if state.Insolvent() {
			e.logger.LogInsolvency(policy.String(), record.GameID, state.CurrentBankroll)
			metrics.RecordSimulationRun("insolvent", time.Since(start).Seconds())
			return nil, fmt.Errorf("%w: %w after game %d", ErrNoResult, ErrInsolvent, record.GameID)
		}
		state.Track(stake, gain)
	}

	if state.BetsMade == 0 {
		metrics.RecordSimulationRun("no_bets", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %w under %s", ErrNoResult, ErrNoBets, policy)
	}

	stats := CalculateStats(state, len(records))
	metrics.RecordSimulationRun("success", time.Since(start).Seconds())
	e.logger.LogPolicyEvaluated(policy.String(), stats.Gain, stats.BetsMade, stats.FinalBankroll)

	return &Result{
		Policy: policy,
		Stats:  stats,
		Ledger: state.Ledger,
	}, nil
}

func (e *Evaluator) ordered(records []models.EvaluationRecord) []models.EvaluationRecord {
	if e.config.SettleOrder != SettleChronological {
		return records
	}
	sorted := append([]models.EvaluationRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
