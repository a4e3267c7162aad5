package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
)

// ErrNoValidPolicy indicates every grid candidate produced no result
var ErrNoValidPolicy = errors.New("no valid stake policy")

// Grid is the search space of the optimizer
type Grid struct {
	MinBets     []float64 `json:"min_bets"`
	MaxBets     []float64 `json:"max_bets"`
	Confidences []float64 `json:"confidences"`
}

// DefaultGrid returns the stock search space
func DefaultGrid() Grid {
	return Grid{
		MinBets:     []float64{10, 20, 50, 75},
		MaxBets:     []float64{50, 100, 200, 500},
		Confidences: []float64{0.4, 0.5, 0.55, 0.6, 0.65, 0.7, 0.75, 0.8},
	}
}

// Candidates enumerates minBet, then maxBet, then confidence, skipping
// combinations whose minimum exceeds the maximum.
func (g Grid) Candidates() []models.StakePolicy {
	candidates := make([]models.StakePolicy, 0, len(g.MinBets)*len(g.MaxBets)*len(g.Confidences))
	for _, minBet := range g.MinBets {
		for _, maxBet := range g.MaxBets {
			if minBet > maxBet {
				continue
			}
			for _, confidence := range g.Confidences {
				candidates = append(candidates, models.StakePolicy{
					MinBet:        minBet,
					MaxBet:        maxBet,
					MinConfidence: confidence,
				})
			}
		}
	}
	return candidates
}

// OptimizationResult is the outcome of a grid search
type OptimizationResult struct {
	RunID     uuid.UUID             `json:"run_id"`
	Results   []models.PolicyResult `json:"results"`
	Best      models.StakePolicy    `json:"best"`
	BestStats Stats                 `json:"best_stats"`
	Ledger    []models.Wager        `json:"ledger"`
	Evaluated int                   `json:"evaluated"`
	Rejected  int                   `json:"rejected"`
}

// BestResult returns the results-table row of the best policy
func (r *OptimizationResult) BestResult() models.PolicyResult {
	for _, result := range r.Results {
		if result.Policy == r.Best {
			return result
		}
	}
	return models.PolicyResult{}
}

// Optimizer searches the grid for the stake policy with the highest gain
type Optimizer struct {
	evaluator *Evaluator
	grid      Grid
	workers   int
	logger    *logger.SimulationLogger
}

// NewOptimizer creates an optimizer. Workers below one run sequentially.
func NewOptimizer(evaluator *Evaluator, grid Grid, workers int, log *logrus.Logger) (*Optimizer, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logrus.New()
	}
	return &Optimizer{
		evaluator: evaluator,
		grid:      grid,
		workers:   workers,
		logger:    logger.NewSimulationLogger(log),
	}, nil
}

// Optimize evaluates every candidate, keeps the successful ones in grid
// order and re-runs the best one with the ledger enabled. Ties go to the
// earliest candidate.
func (o *Optimizer) Optimize(ctx context.Context, records []models.EvaluationRecord) (*OptimizationResult, error) {
	candidates := o.grid.Candidates()
	outcomes := make([]*Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, policy := range candidates {
		i, policy := i, policy
		g.Go(func() error {
			result, err := o.evaluator.Evaluate(gctx, records, policy, false)
			if err != nil {
				if errors.Is(err, ErrNoResult) {
					o.logger.LogPolicyRejected(policy.String(), err)
					metrics.RecordOptimizerCandidate("rejected")
					return nil
				}
				return fmt.Errorf("evaluate %s: %w", policy, err)
			}
			metrics.RecordOptimizerCandidate("accepted")
			outcomes[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	optimization := &OptimizationResult{
		RunID:     runID,
		Results:   make([]models.PolicyResult, 0, len(candidates)),
		Evaluated: len(candidates),
	}

	bestIndex := -1
	for i, result := range outcomes {
		if result == nil {
			optimization.Rejected++
			continue
		}
		optimization.Results = append(optimization.Results, result.Stats.ToPolicyResult(runID, result.Policy))
		if bestIndex < 0 || result.Stats.Gain > outcomes[bestIndex].Stats.Gain {
			bestIndex = i
		}
	}
	if bestIndex < 0 {
		return nil, fmt.Errorf("%w: all %d candidates rejected", ErrNoValidPolicy, len(candidates))
	}

	best := candidates[bestIndex]
	rerun, err := o.evaluator.Evaluate(ctx, records, best, true)
	if err != nil {
		return nil, fmt.Errorf("re-run best policy %s: %w", best, err)
	}
	for i := range rerun.Ledger {
		rerun.Ledger[i].RunID = runID
	}

	optimization.Best = best
	optimization.BestStats = rerun.Stats
	optimization.Ledger = rerun.Ledger

	metrics.UpdateBestPolicyGain(rerun.Stats.Gain)
	o.logger.LogBestPolicy(runID.String(), best.String(), rerun.Stats.Gain, optimization.Evaluated, optimization.Rejected)

	return optimization, nil
}
