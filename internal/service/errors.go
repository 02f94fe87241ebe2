package service

import "errors"

// Centralized service layer errors.
// The engine only fails on caller contract violations; "no answer"
// conditions such as a short bench are reported as empty results.

// ===== Matchmaking Errors =====
var (
	ErrInvalidWeights         = errors.New("scoring weights must be finite and non-negative")
	ErrInvalidPlayersPerMatch = errors.New("players per match must be 2 or 4")
	ErrInvalidPolicy          = errors.New("invalid policy configuration")
	ErrTooManyFixedPlayers    = errors.New("fixed players exceed players per match")
	ErrDuplicatePlayer        = errors.New("player appears more than once")
	ErrDuplicateCourt         = errors.New("court requested more than once")
	ErrUnknownPlayer          = errors.New("player not found")
	ErrMissingRandomSource    = errors.New("random source is required for sampling")
)

// ===== Profile Errors =====
var (
	ErrProfileNotFound     = errors.New("scoring profile not found")
	ErrProfileExists       = errors.New("scoring profile already exists")
	ErrInvalidProfileName  = errors.New("scoring profile name is required")
	ErrWeightsMustSumTo100 = errors.New("profile weights must sum to 100")
)
