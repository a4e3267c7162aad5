// Package main provides the entry point for the stake policy optimizer.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/football-edge/internal/backtest"
	"github.com/yourusername/football-edge/internal/config"
	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/dataset"
	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/oracle"
	"github.com/yourusername/football-edge/internal/repository"
)

var (
	configFile string
	inputPath  string
	outputDir  string
	workers    int
	persist    bool
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&inputPath, "input", "", "Evaluation dataset (defaults to <output_dir>/evaluation.jsonl)")
	rootCmd.Flags().StringVar(&outputDir, "output", "", "Export directory (defaults to export.output_dir)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent policy evaluations (defaults to betting.workers)")
	rootCmd.Flags().BoolVar(&persist, "persist", false, "Store results and the best ledger in PostgreSQL")
}

var rootCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the stake policy grid against the evaluation dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := config.ApplySecretsFromEnv(ctx, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLogger := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	dir := cfg.Export.OutputDir
	if outputDir != "" {
		dir = outputDir
	}
	if inputPath == "" {
		inputPath = filepath.Join(dir, "evaluation.jsonl")
	}
	if workers == 0 {
		workers = cfg.Betting.Workers
	}

	records, err := dataset.ReadEvaluationJSONLinesFile(inputPath)
	if err != nil {
		return err
	}
	appLogger.WithFields(logrus.Fields{"input": inputPath, "records": len(records)}).Info("Loaded evaluation dataset")

	predictor, cache, err := buildOracle(cfg, appLogger)
	if err != nil {
		return err
	}

	evaluator, err := backtest.NewEvaluator(cfg.BacktestConfig(), predictor, appLogger)
	if err != nil {
		return err
	}
	optimizer, err := backtest.NewOptimizer(evaluator, cfg.Grid(), workers, appLogger)
	if err != nil {
		return err
	}

	result, err := optimizer.Optimize(ctx, records)
	if err != nil {
		return err
	}

	hits, misses, ratio := cache.Stats()
	appLogger.WithFields(logrus.Fields{"hits": hits, "misses": misses, "ratio": ratio}).Debug("Oracle cache")
	appLogger.Info(backtest.GenerateConsoleReport(result, cfg.Betting.StartingBankroll))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := backtest.GenerateCSVExport(result, dir); err != nil {
		return err
	}
	export := backtest.NewOptimizationExport(result, cfg.Grid(), cfg.Betting.StartingBankroll)
	if err := backtest.ExportToJSON(export, filepath.Join(dir, "optimization.json")); err != nil {
		return err
	}

	if persist {
		if err := persistResult(ctx, cfg, result); err != nil {
			return err
		}
		appLogger.WithField("run_id", result.RunID).Info("Results persisted")
	}
	return nil
}

func buildOracle(cfg *config.Config, appLogger *logrus.Logger) (oracle.Oracle, *oracle.CachedOracle, error) {
	var (
		base oracle.Oracle
		err  error
	)
	switch cfg.Oracle.Kind {
	case "http":
		base, err = oracle.NewHTTPOracle(oracle.HTTPConfig{
			BaseURL:      cfg.Oracle.URL,
			Timeout:      time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second,
			MaxRetries:   cfg.Oracle.RetryAttempts,
			RetryWaitMin: 200 * time.Millisecond,
			RetryWaitMax: 5 * time.Second,
		}, appLogger)
	default:
		base, err = oracle.LoadNeuralOracle(cfg.Oracle.ModelPath, cfg.FeatureConfig().VectorLength())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s oracle: %w", cfg.Oracle.Kind, err)
	}

	cache := oracle.NewCachedOracle(base, time.Duration(cfg.Oracle.CacheTTLSeconds)*time.Second)
	return cache, cache, nil
}

func persistResult(ctx context.Context, cfg *config.Config, result *backtest.OptimizationResult) error {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}
	return backtest.ExportToDatabase(ctx, result, repository.NewResultStore(repos.PolicyResult, repos.Wager))
}
