// Package config provides configuration management for the football-edge pipeline.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/football-edge/internal/backtest"
	"github.com/yourusername/football-edge/internal/features"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	FootballAPI FootballAPIConfig `mapstructure:"football_api" validate:"required"`
	Features    FeaturesConfig    `mapstructure:"features" validate:"required"`
	Betting     BettingConfig     `mapstructure:"betting" validate:"required"`
	Oracle      OracleConfig      `mapstructure:"oracle" validate:"required"`
	Export      ExportConfig      `mapstructure:"export"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// FootballAPIConfig represents the fixtures and odds provider configuration
type FootballAPIConfig struct {
	BaseURL                string  `mapstructure:"base_url" validate:"required,url"`
	APIKey                 string  `mapstructure:"api_key" validate:"required"`
	RequestsPerMinute      int     `mapstructure:"requests_per_minute" validate:"required,gt=0"`
	TimeoutSeconds         int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries             int     `mapstructure:"max_retries" validate:"gte=0"`
	Bookmaker              int     `mapstructure:"bookmaker" validate:"required,gt=0"`
	Leagues                []int64 `mapstructure:"leagues" validate:"required,min=1"`
	ExtraEvaluationLeagues []int64 `mapstructure:"extra_evaluation_leagues"`
	FirstSeason            int     `mapstructure:"first_season" validate:"required,gt=1900"`
	LastSeason             int     `mapstructure:"last_season" validate:"required,gtefield=FirstSeason"`
	ExtraEvaluationSeasons []int   `mapstructure:"extra_evaluation_seasons"`
	Schedule               string  `mapstructure:"schedule"`
}

// WindowConfig bounds a feature segment
type WindowConfig struct {
	Min int `mapstructure:"min" validate:"gte=0"`
	Max int `mapstructure:"max" validate:"required,gt=0"`
}

// FeaturesConfig represents feature extraction settings
type FeaturesConfig struct {
	MaxDaysSinceGame      int          `mapstructure:"max_days_since_game" validate:"required,gt=0"`
	MaxDaysSinceHead2Head int          `mapstructure:"max_days_since_head2head" validate:"required,gt=0"`
	RecentGames           WindowConfig `mapstructure:"recent_games" validate:"required"`
	Head2Head             WindowConfig `mapstructure:"head2head" validate:"required"`
}

// BettingConfig represents bankroll simulation and grid search settings
type BettingConfig struct {
	StartingBankroll     float64   `mapstructure:"starting_bankroll" validate:"required,gt=0"`
	SettleOrder          string    `mapstructure:"settle_order" validate:"required,settleorder"`
	Workers              int       `mapstructure:"workers" validate:"gte=0"`
	MinBetCandidates     []float64 `mapstructure:"min_bet_candidates" validate:"required,min=1,dive,gt=0"`
	MaxBetCandidates     []float64 `mapstructure:"max_bet_candidates" validate:"required,min=1,dive,gt=0"`
	ConfidenceCandidates []float64 `mapstructure:"confidence_candidates" validate:"required,min=1,dive,gte=0,lt=1"`
}

// OracleConfig represents the outcome predictor settings
type OracleConfig struct {
	Kind            string `mapstructure:"kind" validate:"required,oraclekind"`
	ModelPath       string `mapstructure:"model_path"`
	URL             string `mapstructure:"url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts   int    `mapstructure:"retry_attempts" validate:"gte=0"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// ExportConfig represents output locations
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// MetricsConfig represents Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// FeatureConfig converts the features section to extraction settings
func (c *Config) FeatureConfig() features.Config {
	return features.Config{
		MaxDaysSinceGame:       c.Features.MaxDaysSinceGame,
		MaxDaysSinceHeadToHead: c.Features.MaxDaysSinceHead2Head,
		RecentGames:            features.Window{Min: c.Features.RecentGames.Min, Max: c.Features.RecentGames.Max},
		HeadToHead:             features.Window{Min: c.Features.Head2Head.Min, Max: c.Features.Head2Head.Max},
	}
}

// BacktestConfig converts the betting section to simulation settings
func (c *Config) BacktestConfig() backtest.Config {
	cfg := backtest.DefaultConfig()
	cfg.StartingBankroll = c.Betting.StartingBankroll
	cfg.SettleOrder = backtest.SettleOrder(c.Betting.SettleOrder)
	return cfg
}

// Grid returns the stake-policy search space
func (c *Config) Grid() backtest.Grid {
	return backtest.Grid{
		MinBets:     c.Betting.MinBetCandidates,
		MaxBets:     c.Betting.MaxBetCandidates,
		Confidences: c.Betting.ConfidenceCandidates,
	}
}

// IsExtraEvaluationLeague reports whether odds for the league come from the CSV import
func (c *Config) IsExtraEvaluationLeague(leagueID int64) bool {
	for _, id := range c.FootballAPI.ExtraEvaluationLeagues {
		if id == leagueID {
			return true
		}
	}
	return false
}

// RequestInterval returns the minimum spacing between football API calls
func (c *Config) RequestInterval() time.Duration {
	if c.FootballAPI.RequestsPerMinute <= 0 {
		return time.Minute
	}
	return time.Minute / time.Duration(c.FootballAPI.RequestsPerMinute)
}
