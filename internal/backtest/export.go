package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/yourusername/football-edge/internal/models"
)

// ResultStore persists optimization output
type ResultStore interface {
	SaveResults(ctx context.Context, results []models.PolicyResult) error
	SaveLedger(ctx context.Context, runID uuid.UUID, ledger []models.Wager) error
}

// OptimizationExport is the JSON document written for an optimization run
type OptimizationExport struct {
	*OptimizationResult
	Grid        Grid        `json:"grid"`
	EquityCurve EquityCurve `json:"equity_curve"`
	MaxDrawdown float64     `json:"max_drawdown"`
}

// NewOptimizationExport bundles a result with the grid and bankroll path
func NewOptimizationExport(result *OptimizationResult, grid Grid, startingBankroll float64) OptimizationExport {
	curve := BuildEquityCurve(startingBankroll, result.Ledger)
	return OptimizationExport{
		OptimizationResult: result,
		Grid:               grid,
		EquityCurve:        curve,
		MaxDrawdown:        curve.MaxDrawdown(),
	}
}

// ExportToJSON writes export data to JSON file
func ExportToJSON(export OptimizationExport, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// ExportToDatabase persists the results table and the best policy ledger
func ExportToDatabase(ctx context.Context, result *OptimizationResult, store ResultStore) error {
	if store == nil {
		return fmt.Errorf("result store is required")
	}
	if err := store.SaveResults(ctx, result.Results); err != nil {
		return fmt.Errorf("failed to save policy results: %w", err)
	}
	if err := store.SaveLedger(ctx, result.RunID, result.Ledger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
