package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

func TestProfileRegistry_BuiltIns(t *testing.T) {
	t.Parallel()

	r := NewProfileRegistry()
	profiles := r.List()
	require.Len(t, profiles, 3)
	assert.Equal(t, "balanced", profiles[0].Slug)
	assert.Equal(t, "competitive", profiles[1].Slug)
	assert.Equal(t, "social", profiles[2].Slug)

	p, err := r.Resolve("Competitive")
	require.NoError(t, err)
	assert.Equal(t, 70.0, p.Weights.SkillBalance)
}

func TestProfileRegistry_ResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewProfileRegistry().Resolve("tournament")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewProfileRegistry()
	p, err := r.Register(model.ScoringProfile{
		Name:    "Thursday Ladder",
		Weights: model.ScoringWeights{SkillBalance: 60, MatchHistory: 20, TimeOffCourt: 20},
		Policy:  model.PolicyConfig{BlacklistMode: model.PolicyModeStrict},
	})
	require.NoError(t, err)
	assert.Equal(t, "thursday-ladder", p.Slug)
	assert.Equal(t, model.PolicyModePreferred, p.Policy.GenderMatchingMode)
	assert.Equal(t, 1.0, p.Policy.MixedBias)

	resolved, err := r.Resolve("thursday-ladder")
	require.NoError(t, err)
	assert.Equal(t, model.PolicyModeStrict, resolved.Policy.BlacklistMode)
	assert.Len(t, r.List(), 4)
}

func TestProfileRegistry_RegisterErrors(t *testing.T) {
	t.Parallel()

	valid := model.ScoringWeights{SkillBalance: 50, MatchHistory: 25, TimeOffCourt: 25}
	tests := []struct {
		name     string
		profile  model.ScoringProfile
		expected error
	}{
		{"empty name", model.ScoringProfile{Name: "  ", Weights: valid}, ErrInvalidProfileName},
		{"negative weight", model.ScoringProfile{Name: "x", Weights: model.ScoringWeights{SkillBalance: -10, MatchHistory: 110}}, ErrInvalidWeights},
		{"wrong sum", model.ScoringProfile{Name: "x", Weights: model.ScoringWeights{SkillBalance: 50}}, ErrWeightsMustSumTo100},
		{"bad policy", model.ScoringProfile{Name: "x", Weights: valid, Policy: model.PolicyConfig{BlacklistMode: "always"}}, ErrInvalidPolicy},
		{"duplicate of built-in", model.ScoringProfile{Name: "BALANCED", Weights: valid}, ErrProfileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewProfileRegistry().Register(tt.profile)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
