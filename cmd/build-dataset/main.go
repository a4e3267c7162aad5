// Package main provides the entry point for building training and evaluation datasets.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/football-edge/internal/config"
	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/dataset"
	"github.com/yourusername/football-edge/internal/features"
	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
	"github.com/yourusername/football-edge/internal/repository"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		outputDir   = flag.String("output", "", "Output directory (defaults to export.output_dir)")
		firstSeason = flag.Int("first-season", 0, "Restrict training games to seasons from this one")
		lastSeason  = flag.Int("last-season", 0, "Restrict training games to seasons up to this one")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfigWithSecrets(ctx, *configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	dir := cfg.Export.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}

	games, evaluation := loadGames(ctx, repos, *firstSeason, *lastSeason, log)

	extractor, err := features.NewExtractor(features.NewArchive(games), cfg.FeatureConfig())
	if err != nil {
		log.Fatalf("Invalid feature configuration: %v", err)
	}
	assembler := dataset.NewAssembler(extractor, log)

	training, trainingSummary, err := assembler.BuildTraining(games)
	if err != nil {
		log.Fatalf("Failed to build training dataset: %v", err)
	}
	evalRecords, evalSummary, err := assembler.BuildEvaluation(evaluation)
	if err != nil {
		log.Fatalf("Failed to build evaluation dataset: %v", err)
	}

	trainingPath := filepath.Join(dir, "training.jsonl")
	if err := dataset.WriteJSONLinesFile(trainingPath, training); err != nil {
		log.Fatalf("Failed to write training dataset: %v", err)
	}
	evaluationPath := filepath.Join(dir, "evaluation.jsonl")
	if err := dataset.WriteJSONLinesFile(evaluationPath, evalRecords); err != nil {
		log.Fatalf("Failed to write evaluation dataset: %v", err)
	}

	log.WithFields(logrus.Fields{
		"training_path":       trainingPath,
		"training_accepted":   trainingSummary.Accepted,
		"training_dropped":    trainingSummary.Dropped,
		"evaluation_path":     evaluationPath,
		"evaluation_accepted": evalSummary.Accepted,
		"evaluation_dropped":  evalSummary.Dropped,
	}).Info("Datasets written")
}

func loadConfigWithSecrets(ctx context.Context, path string) *config.Config {
	log := logrus.New()
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ApplySecretsFromEnv(ctx, cfg); err != nil {
		log.Fatalf("Failed to load secrets: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func loadGames(ctx context.Context, repos *repository.Repositories, first, last int, log *logrus.Logger) ([]models.Game, []models.EvaluationGame) {
	var (
		games []models.Game
		err   error
	)
	if first > 0 || last > 0 {
		if last == 0 {
			last = first
		}
		games, err = repos.Game.ListBySeasonRange(ctx, first, last)
	} else {
		games, err = repos.Game.List(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to load games: %v", err)
	}

	evaluation, err := repos.Evaluation.List(ctx)
	if err != nil {
		log.Fatalf("Failed to load evaluation games: %v", err)
	}
	return games, evaluation
}
