package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// MatchmakingService is the engine's entry point. Every call is a fresh,
// stateless computation over the inputs it is given.
type MatchmakingService struct {
	generator   GeneratorConfig
	workers     int
	defaultRest float64
	now         func() time.Time
	newRand     func() RandomSource
	newID       func() string
	logger      *slog.Logger
}

// MatchmakingServiceConfig holds configuration for the matchmaking service
type MatchmakingServiceConfig struct {
	Generator          GeneratorConfig
	ScoringWorkers     int                 // Optional, defaults to 1
	DefaultRestMinutes float64             // Optional, defaults to model.DefaultRestMinutes
	Seed               int64               // Seeds the default random source
	Now                func() time.Time    // Optional
	NewRand            func() RandomSource // Optional, overrides Seed
	NewID              func() string       // Optional, defaults to uuid
	Logger             *slog.Logger        // Optional
}

// NewMatchmakingService creates a new matchmaking service
func NewMatchmakingService(cfg MatchmakingServiceConfig) *MatchmakingService {
	s := &MatchmakingService{
		generator:   cfg.Generator,
		workers:     cfg.ScoringWorkers,
		defaultRest: cfg.DefaultRestMinutes,
		now:         cfg.Now,
		newRand:     cfg.NewRand,
		newID:       cfg.NewID,
		logger:      cfg.Logger,
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	if s.defaultRest <= 0 {
		s.defaultRest = model.DefaultRestMinutes
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newRand == nil {
		seed := cfg.Seed
		s.newRand = func() RandomSource { return rand.New(rand.NewSource(seed)) }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// GenerateMatchesRequest is the input to a full multi-court allocation
type GenerateMatchesRequest struct {
	Bench           []model.Player
	History         []model.CompletedMatchRecord
	Courts          []int
	Weights         model.ScoringWeights
	Policy          model.PolicyConfig
	PlayersPerMatch int
}

// GenerateMatches proposes one match per court, in court order, from the
// bench. Courts that cannot be filled receive no proposal.
func (s *MatchmakingService) GenerateMatches(ctx context.Context, req GenerateMatchesRequest) (*model.AllocationRound, error) {
	policy, err := s.validate(req.Weights, req.Policy, req.PlayersPerMatch)
	if err != nil {
		return nil, err
	}
	if err := validateUniquePlayers(req.Bench); err != nil {
		return nil, err
	}
	if err := validateCourts(req.Courts); err != nil {
		return nil, err
	}

	now := s.now()
	index := BuildHistoryIndex(req.History)
	allocator := s.newAllocator(index, req.Weights, policy, now)

	matches, remaining, err := allocator.Allocate(ctx, req.Bench, req.Courts, req.PlayersPerMatch)
	if err != nil {
		return nil, err
	}

	unassigned := make([]string, len(remaining))
	for i, p := range remaining {
		unassigned[i] = p.ID
	}

	s.logger.Debug("allocation pass complete",
		slog.Int("bench", len(req.Bench)),
		slog.Int("courts_requested", len(req.Courts)),
		slog.Int("courts_filled", len(matches)),
	)

	return &model.AllocationRound{
		ID:              s.newID(),
		GeneratedAt:     now,
		PlayersPerMatch: req.PlayersPerMatch,
		Matches:         matches,
		Unassigned:      unassigned,
	}, nil
}

// RegenerateCourtRequest re-runs allocation for one court while the other
// courts' assignments stay fixed
type RegenerateCourtRequest struct {
	Bench           []model.Player
	History         []model.CompletedMatchRecord
	Court           int
	Committed       []string // Player IDs assigned to other courts
	Weights         model.ScoringWeights
	Policy          model.PolicyConfig
	PlayersPerMatch int
}

// RegenerateCourt proposes a new match for a single court using only
// players not committed elsewhere. It returns nil if the court cannot be filled.
func (s *MatchmakingService) RegenerateCourt(ctx context.Context, req RegenerateCourtRequest) (*model.MatchCandidate, error) {
	policy, err := s.validate(req.Weights, req.Policy, req.PlayersPerMatch)
	if err != nil {
		return nil, err
	}
	if err := validateUniquePlayers(req.Bench); err != nil {
		return nil, err
	}

	pool := withoutPlayers(req.Bench, req.Committed)
	index := BuildHistoryIndex(req.History)
	allocator := s.newAllocator(index, req.Weights, policy, s.now())

	matches, _, err := allocator.Allocate(ctx, pool, []int{req.Court}, req.PlayersPerMatch)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// ReplacementRequest describes a group with open slots to repair
type ReplacementRequest struct {
	FixedPlayerIDs  []string
	Roster          []model.Player // Resolves fixed IDs; may include the pool
	Pool            []model.Player // Bench minus players committed to other courts
	History         []model.CompletedMatchRecord
	Weights         model.ScoringWeights
	Policy          model.PolicyConfig
	PlayersPerMatch int
}

// FindBestReplacement returns the pool member that best completes the
// fixed players, or nil when nobody can
func (s *MatchmakingService) FindBestReplacement(ctx context.Context, req ReplacementRequest) (*model.Replacement, error) {
	policy, err := s.validate(req.Weights, req.Policy, req.PlayersPerMatch)
	if err != nil {
		return nil, err
	}
	if len(req.FixedPlayerIDs) > req.PlayersPerMatch {
		return nil, fmt.Errorf("%w: %d fixed for %d slots", ErrTooManyFixedPlayers, len(req.FixedPlayerIDs), req.PlayersPerMatch)
	}

	lookup := make(map[string]model.Player, len(req.Roster)+len(req.Pool))
	for _, p := range req.Pool {
		lookup[p.ID] = p
	}
	for _, p := range req.Roster {
		lookup[p.ID] = p
	}

	fixed := make([]model.Player, 0, len(req.FixedPlayerIDs))
	seen := make(map[string]bool, len(req.FixedPlayerIDs))
	for _, id := range req.FixedPlayerIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = true
		p, ok := lookup[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		fixed = append(fixed, p)
	}

	index := BuildHistoryIndex(req.History)
	scorer := NewScorer(index, req.Weights, policy, s.now(), s.defaultRest)
	return NewSlotRepairer(scorer).BestAddition(ctx, fixed, req.Pool, req.PlayersPerMatch)
}

// ScoreGroup scores a manually edited group without running generation
func (s *MatchmakingService) ScoreGroup(players []model.Player, index *HistoryIndex, weights model.ScoringWeights, policy model.PolicyConfig) (*model.GroupScore, error) {
	normalized, err := s.validate(weights, policy, len(players))
	if err != nil {
		return nil, err
	}
	if err := validateUniquePlayers(players); err != nil {
		return nil, err
	}

	scored := NewScorer(index, weights, normalized, s.now(), s.defaultRest).Score(players)
	return &scored, nil
}

func (s *MatchmakingService) newAllocator(index *HistoryIndex, weights model.ScoringWeights, policy model.PolicyConfig, now time.Time) *CourtAllocator {
	scorer := NewScorer(index, weights, policy, now, s.defaultRest)
	generator := NewCandidateGenerator(s.generator, s.newRand())
	return NewCourtAllocator(generator, scorer, s.workers, s.logger)
}

// validate checks the caller contract and returns the policy with
// defaults filled in
func (s *MatchmakingService) validate(weights model.ScoringWeights, policy model.PolicyConfig, playersPerMatch int) (model.PolicyConfig, error) {
	if !weights.IsValid() {
		return policy, fmt.Errorf("%w: %+v", ErrInvalidWeights, weights)
	}
	if !model.IsValidPlayersPerMatch(playersPerMatch) {
		return policy, fmt.Errorf("%w: got %d", ErrInvalidPlayersPerMatch, playersPerMatch)
	}
	return normalizePolicy(policy)
}

// normalizePolicy fills unset modes and biases with their defaults
func normalizePolicy(policy model.PolicyConfig) (model.PolicyConfig, error) {
	if policy.GenderMatchingMode == "" {
		policy.GenderMatchingMode = model.PolicyModePreferred
	}
	if policy.BlacklistMode == "" {
		policy.BlacklistMode = model.PolicyModePreferred
	}
	if !policy.GenderMatchingMode.IsValid() {
		return policy, fmt.Errorf("%w: gender matching mode %q", ErrInvalidPolicy, policy.GenderMatchingMode)
	}
	if !policy.BlacklistMode.IsValid() {
		return policy, fmt.Errorf("%w: blacklist mode %q", ErrInvalidPolicy, policy.BlacklistMode)
	}

	for _, bias := range []*float64{&policy.LevelBias, &policy.MixedBias, &policy.AsymmetricBias} {
		if math.IsNaN(*bias) || *bias < 0 {
			return policy, fmt.Errorf("%w: negative style bias", ErrInvalidPolicy)
		}
		if *bias == 0 {
			*bias = 1
		}
	}

	for _, e := range policy.Blacklist {
		if !e.Type.IsValid() {
			return policy, fmt.Errorf("%w: blacklist type %q", ErrInvalidPolicy, e.Type)
		}
	}
	return policy, nil
}

func validateUniquePlayers(players []model.Player) error {
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func validateCourts(courts []int) error {
	seen := make(map[int]bool, len(courts))
	for _, c := range courts {
		if seen[c] {
			return fmt.Errorf("%w: %d", ErrDuplicateCourt, c)
		}
		seen[c] = true
	}
	return nil
}
