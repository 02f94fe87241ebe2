// Package config manages configuration for the courtplan matchmaker.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // every failing key is reported at once
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - AppConfig: process environment
//   - LogConfig: slog level and handler format
//   - MatchmakingConfig: generation budgets, seed, scoring workers and defaults
//
// # Environment Variables
//
// Key environment variables:
//
//	APP_ENV                            - development, production or test
//	LOG_LEVEL                          - debug, info, warn, error (default: info)
//	LOG_FORMAT                         - json or text (default: json)
//	MATCHMAKING_EXHAUSTIVE_THRESHOLD   - largest bench enumerated in full (default: 12)
//	MATCHMAKING_SAMPLE_BUDGET          - distinct samples per court (default: 100)
//	MATCHMAKING_ATTEMPT_BUDGET         - sampling draws per court (default: 2000)
//	MATCHMAKING_SEED                   - seed for the sampling RNG (default: 42)
//	MATCHMAKING_SCORING_WORKERS        - concurrent candidate scorers (default: 1)
//	MATCHMAKING_DEFAULT_PROFILE        - profile used when a session names none
//	MATCHMAKING_DEFAULT_REST_MINUTES   - rest assumed for players with no history
package config
