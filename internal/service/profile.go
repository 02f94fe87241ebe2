package service

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gosimple/slug"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// weightSumTolerance absorbs float error when checking weights sum to 100
const weightSumTolerance = 1e-6

// ProfileRegistry resolves named scoring profiles. Names are compared by
// slug, so "Competitive Night" and "competitive-night" are the same profile.
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]model.ScoringProfile
}

// NewProfileRegistry creates a registry seeded with the built-in profiles
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{profiles: make(map[string]model.ScoringProfile)}
	for _, p := range []model.ScoringProfile{model.BalancedProfile, model.CompetitiveProfile, model.SocialProfile} {
		p.Slug = slug.Make(p.Name)
		r.profiles[p.Slug] = p
	}
	return r
}

// Register adds a club-defined profile. Unlike the engine entry points,
// registration enforces that the three weights sum to 100.
func (r *ProfileRegistry) Register(profile model.ScoringProfile) (*model.ScoringProfile, error) {
	key := slug.Make(profile.Name)
	if key == "" {
		return nil, ErrInvalidProfileName
	}
	if !profile.Weights.IsValid() {
		return nil, ErrInvalidWeights
	}
	if math.Abs(profile.Weights.Sum()-100) > weightSumTolerance {
		return nil, fmt.Errorf("%w: got %.2f", ErrWeightsMustSumTo100, profile.Weights.Sum())
	}
	policy, err := normalizePolicy(profile.Policy)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[key]; exists {
		return nil, ErrProfileExists
	}
	profile.Slug = key
	profile.Policy = policy
	r.profiles[key] = profile
	return &profile, nil
}

// Resolve looks up a profile by name or slug
func (r *ProfileRegistry) Resolve(name string) (*model.ScoringProfile, error) {
	key := slug.Make(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return &profile, nil
}

// List returns all profiles ordered by slug
func (r *ProfileRegistry) List() []model.ScoringProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ScoringProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
