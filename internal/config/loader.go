package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "FOOTBALL_EDGE"
)

// Load reads and parses the configuration from file and environment variables.
// Placeholders of the form ${VAR_NAME} are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "football-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "football_prediction_db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("football_api.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("football_api.requests_per_minute", 10)
	v.SetDefault("football_api.timeout_seconds", 30)
	v.SetDefault("football_api.max_retries", 3)
	v.SetDefault("football_api.bookmaker", 8)
	v.SetDefault("football_api.extra_evaluation_seasons", []int{2015, 2016, 2017, 2018})
	v.SetDefault("football_api.schedule", "0 0 6 * * *")

	v.SetDefault("features.max_days_since_game", 365)
	v.SetDefault("features.max_days_since_head2head", 1825)
	v.SetDefault("features.recent_games.min", 3)
	v.SetDefault("features.recent_games.max", 5)
	v.SetDefault("features.head2head.min", 1)
	v.SetDefault("features.head2head.max", 3)

	v.SetDefault("betting.starting_bankroll", 1000)
	v.SetDefault("betting.settle_order", "dataset")
	v.SetDefault("betting.workers", 1)
	v.SetDefault("betting.min_bet_candidates", []float64{10, 20, 50, 75})
	v.SetDefault("betting.max_bet_candidates", []float64{50, 100, 200, 500})
	v.SetDefault("betting.confidence_candidates", []float64{0.4, 0.5, 0.55, 0.6, 0.65, 0.7, 0.75, 0.8})

	v.SetDefault("oracle.kind", "neural")
	v.SetDefault("oracle.model_path", "models/neural_net.json")
	v.SetDefault("oracle.timeout_seconds", 10)
	v.SetDefault("oracle.retry_attempts", 3)

	v.SetDefault("export.output_dir", "data")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
