package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	Matchmaking MatchmakingConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Env string
}

// LogConfig holds structured logging settings
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// MatchmakingConfig holds engine budgets and defaults
type MatchmakingConfig struct {
	ExhaustiveThreshold int
	SampleBudget        int
	AttemptBudget       int
	Seed                int64
	ScoringWorkers      int
	DefaultProfile      string
	DefaultRestMinutes  float64
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Matchmaking: MatchmakingConfig{
			ExhaustiveThreshold: getIntEnv("MATCHMAKING_EXHAUSTIVE_THRESHOLD", 12),
			SampleBudget:        getIntEnv("MATCHMAKING_SAMPLE_BUDGET", 100),
			AttemptBudget:       getIntEnv("MATCHMAKING_ATTEMPT_BUDGET", 2000),
			Seed:                getInt64Env("MATCHMAKING_SEED", 42),
			ScoringWorkers:      getIntEnv("MATCHMAKING_SCORING_WORKERS", 1),
			DefaultProfile:      getEnv("MATCHMAKING_DEFAULT_PROFILE", "balanced"),
			DefaultRestMinutes:  getFloatEnv("MATCHMAKING_DEFAULT_REST_MINUTES", 60),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env != "development" && c.App.Env != "production" && c.App.Env != "test" {
		errs = append(errs, fmt.Errorf("APP_ENV must be 'development', 'production', or 'test', got '%s'", c.App.Env))
	}

	// Logging validation
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.Log.Format))
	}

	// Engine budgets
	m := c.Matchmaking
	if m.ExhaustiveThreshold <= 0 {
		errs = append(errs, errors.New("MATCHMAKING_EXHAUSTIVE_THRESHOLD must be positive"))
	}
	if m.SampleBudget <= 0 {
		errs = append(errs, errors.New("MATCHMAKING_SAMPLE_BUDGET must be positive"))
	}
	if m.AttemptBudget < m.SampleBudget {
		errs = append(errs, errors.New("MATCHMAKING_ATTEMPT_BUDGET must be at least MATCHMAKING_SAMPLE_BUDGET"))
	}
	if m.ScoringWorkers <= 0 {
		errs = append(errs, errors.New("MATCHMAKING_SCORING_WORKERS must be positive"))
	}
	if m.DefaultProfile == "" {
		errs = append(errs, errors.New("MATCHMAKING_DEFAULT_PROFILE is required"))
	}
	if m.DefaultRestMinutes <= 0 {
		errs = append(errs, errors.New("MATCHMAKING_DEFAULT_REST_MINUTES must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// NewLogger builds the process logger described by the log settings
func (c *Config) NewLogger() *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got '%s'", s)
	}
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
