// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/football-edge/internal/config"
	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/datasource"
	"github.com/yourusername/football-edge/internal/health"
	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/repository"
	"github.com/yourusername/football-edge/internal/scheduler"
	"github.com/yourusername/football-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	csvPath    string
	seasons    []int
	runNow     bool

	appLogger *logrus.Logger
	cfg       *config.Config
	db        *database.DB
	svc       *service.IngestionService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	extraCmd.Flags().StringVar(&csvPath, "csv", "data/odds/Matches_Odds.csv", "Path to the historical odds CSV")
	extraCmd.Flags().IntSliceVar(&seasons, "seasons", nil, "Seasons to match (defaults to football_api.extra_evaluation_seasons)")

	scheduleCmd.Flags().BoolVar(&runNow, "run-now", false, "Run one ingestion immediately before waiting for the schedule")

	rootCmd.AddCommand(runCmd, scheduleCmd, extraCmd)
}

var rootCmd = &cobra.Command{
	Use:   "data-ingestion",
	Short: "Fetch football fixtures and odds into PostgreSQL",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full ingestion",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := svc.IngestAll(cmd.Context())
		if err != nil {
			return err
		}
		appLogger.Info(report.String())
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run ingestion on the configured cron schedule and serve metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScheduler(cmd.Context())
	},
}

var extraCmd = &cobra.Command{
	Use:   "extra-evaluation",
	Short: "Move archive games found in the odds CSV into the evaluation table",
	RunE: func(cmd *cobra.Command, args []string) error {
		moved, err := svc.ImportExtraEvaluation(cmd.Context(), csvPath, seasons)
		if err != nil {
			return err
		}
		appLogger.WithField("moved", moved).Info("Extra evaluation import completed")
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if err := config.ApplySecretsFromEnv(ctx, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if cfg.IsProduction() {
		return config.ValidateEnvironment(cfg)
	}
	return nil
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.FootballAPI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.FootballAPI.MaxRetries,
		RetryWaitMin:      time.Second,
		RetryWaitMax:      time.Minute,
		RequestInterval:   cfg.RequestInterval(),
		CircuitBreakerMax: 5,
	}, appLogger)
	source := datasource.NewAPIFootballClient(cfg.FootballAPI.BaseURL, cfg.FootballAPI.APIKey, httpClient, appLogger)

	svc = service.NewIngestionService(source, repos.Game, repos.Evaluation, cfg.FootballAPI, appLogger)
	return nil
}

func runScheduler(ctx context.Context) error {
	sched := scheduler.NewScheduler(svc, appLogger)
	if err := sched.ScheduleIngestion(cfg.FootballAPI.Schedule); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		server := health.NewServer(health.Config{
			ServiceName:    "data-ingestion",
			Version:        Version + "-" + GitCommit,
			Port:           cfg.Metrics.Port,
			MetricsPath:    cfg.Metrics.Path,
			MetricsHandler: metrics.Handler(),
			Checks: map[string]health.Check{
				"database": db.Ping,
			},
			Logger: appLogger,
		})
		if err := server.Start(ctx); err != nil {
			return err
		}
		server.SetReady(true)
	}

	if runNow {
		if err := sched.RunNow(ctx); err != nil {
			appLogger.WithError(err).Warn("Initial ingestion failed")
		}
	}

	if err := sched.Start(); err != nil {
		return err
	}
	appLogger.WithField("next_run", sched.GetNextRun()).Info("Waiting for scheduled ingestion")

	<-ctx.Done()
	appLogger.Info("Shutting down")
	return sched.Stop()
}
