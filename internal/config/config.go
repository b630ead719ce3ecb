// Package config loads the kirchhoff configuration from a YAML file and
// KIRCHHOFF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phy132/kirchhoff/internal/equation"
	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/store"
	"github.com/phy132/kirchhoff/internal/webhook"
)

// Config is the top-level configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Grading  GradingConfig  `yaml:"grading"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig locates the problem bank files.
type DataConfig struct {
	Problems string `yaml:"problems"`
	Answers  string `yaml:"answers"` // Optional.
}

// DatabaseConfig selects the attempt store.
type DatabaseConfig struct {
	// Driver is "sqlite" or "pgx". Default: "sqlite".
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite or a connection URL for pgx.
	// Empty means the default sqlite path.
	DSN string `yaml:"dsn"`
}

// WebhookConfig configures the remote submission log.
type WebhookConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
}

// GradingConfig holds the tolerances.
type GradingConfig struct {
	CurrentToleranceMA float64 `yaml:"current_tolerance_ma"`
	AlmostMultiplier   float64 `yaml:"almost_multiplier"`
	EquationAbsTol     float64 `yaml:"equation_abs_tol"`
	EquationRelTol     float64 `yaml:"equation_rel_tol"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	g := grading.DefaultConfig()
	w := webhook.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Problems: "data/problems.json",
			Answers:  "data/answers.json",
		},
		Database: DatabaseConfig{
			Driver: store.DriverSQLite,
		},
		Webhook: WebhookConfig{
			Timeout:     w.Timeout,
			MaxAttempts: w.Retry.MaxAttempts,
			InitialWait: w.Retry.InitialWait,
			MaxWait:     w.Retry.MaxWait,
		},
		Grading: GradingConfig{
			CurrentToleranceMA: g.CurrentTolerance,
			AlmostMultiplier:   g.AlmostMultiplier,
			EquationAbsTol:     g.Equation.Abs,
			EquationRelTol:     g.Equation.Rel,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies KIRCHHOFF_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("KIRCHHOFF_PROBLEMS"); v != "" {
		c.Data.Problems = v
	}
	if v := os.Getenv("KIRCHHOFF_ANSWERS"); v != "" {
		c.Data.Answers = v
	}
	if v := os.Getenv("KIRCHHOFF_DB"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("KIRCHHOFF_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("KIRCHHOFF_WEBHOOK_URL"); v != "" {
		c.Webhook.URL = v
	}
	if v := os.Getenv("KIRCHHOFF_TOLERANCE_MA"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("KIRCHHOFF_TOLERANCE_MA: %w", err)
		}
		c.Grading.CurrentToleranceMA = f
	}
	if v := os.Getenv("KIRCHHOFF_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Data.Problems == "" {
		return errors.New("data.problems is required")
	}
	switch c.Database.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the pgx driver")
		}
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Logging.Level)
	}
	if err := c.GradingConfig().Validate(); err != nil {
		return fmt.Errorf("grading: %w", err)
	}
	if err := c.WebhookConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// GradingConfig converts the grading section for the grader.
func (c *Config) GradingConfig() grading.Config {
	return grading.Config{
		CurrentTolerance: c.Grading.CurrentToleranceMA,
		AlmostMultiplier: c.Grading.AlmostMultiplier,
		Equation: equation.Tolerance{
			Abs: c.Grading.EquationAbsTol,
			Rel: c.Grading.EquationRelTol,
		},
	}
}

// WebhookConfig converts the webhook section for the client.
func (c *Config) WebhookConfig() webhook.Config {
	w := webhook.DefaultConfig()
	w.URL = c.Webhook.URL
	w.Timeout = c.Webhook.Timeout
	w.Retry.MaxAttempts = c.Webhook.MaxAttempts
	w.Retry.InitialWait = c.Webhook.InitialWait
	w.Retry.MaxWait = c.Webhook.MaxWait
	return w
}

// DatabaseDSN returns the configured DSN, or the default sqlite path.
func (c *Config) DatabaseDSN() (string, error) {
	if c.Database.DSN != "" {
		return c.Database.DSN, nil
	}
	if c.Database.Driver != store.DriverSQLite {
		return "", fmt.Errorf("database.dsn is required for the %s driver", c.Database.Driver)
	}
	return store.DefaultDBPath()
}
