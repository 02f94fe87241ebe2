package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/courtside/matchmaker/internal/model"
	"github.com/forgo/courtside/matchmaker/internal/testing/fixtures"
)

// firstChoiceRand always draws the lowest indexes
type firstChoiceRand struct{}

func (firstChoiceRand) Intn(n int) int { return 0 }

func (firstChoiceRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func ids(group []model.Player) []string {
	out := make([]string, len(group))
	for i, p := range group {
		out[i] = p.ID
	}
	return out
}

func skillsUpTo(n int) []int {
	skills := make([]int, n)
	for i := range skills {
		skills[i] = i%10 + 1
	}
	return skills
}

// ============================================================================
// Exhaustive Generation Tests
// ============================================================================

func TestGenerate_ExhaustiveCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bench    int
		size     int
		expected int
	}{
		{"singles from four", 4, 2, 6},
		{"doubles from exact four", 4, 4, 1},
		{"doubles from six", 6, 4, 15},
		{"doubles at threshold", 12, 4, 495},
	}

	f := fixtures.New()
	gen := NewCandidateGenerator(DefaultGeneratorConfig, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := gen.Generate(f.CreateBench(t, skillsUpTo(tt.bench)...), tt.size)
			require.NoError(t, err)
			assert.Len(t, groups, tt.expected)

			seen := make(map[string]bool)
			for _, g := range groups {
				key := groupKey(ids(g))
				assert.False(t, seen[key], "duplicate grouping %v", ids(g))
				seen[key] = true
			}
		})
	}
}

func TestGenerate_ExhaustiveOrderIsLexicographic(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	bench := f.CreateBench(t, 3, 3, 3, 3, 3)
	// Reverse to prove input order does not matter
	reversed := []model.Player{bench[4], bench[3], bench[2], bench[1], bench[0]}

	groups, err := NewCandidateGenerator(DefaultGeneratorConfig, nil).Generate(reversed, 4)
	require.NoError(t, err)
	require.Len(t, groups, 5)
	assert.Equal(t, []string{"p01", "p02", "p03", "p04"}, ids(groups[0]))
	assert.Equal(t, []string{"p02", "p03", "p04", "p05"}, ids(groups[4]))
}

func TestGenerate_BenchTooSmall(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	groups, err := NewCandidateGenerator(DefaultGeneratorConfig, nil).Generate(f.CreateBench(t, 5, 5, 5), 4)
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

// ============================================================================
// Sampled Generation Tests
// ============================================================================

func TestGenerate_SamplesLargeBench(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	bench := f.CreateBench(t, skillsUpTo(20)...)
	gen := NewCandidateGenerator(DefaultGeneratorConfig, rand.New(rand.NewSource(7)))

	groups, err := gen.Generate(bench, 4)
	require.NoError(t, err)
	assert.Len(t, groups, DefaultGeneratorConfig.SampleBudget)

	seen := make(map[string]bool)
	for _, g := range groups {
		require.Len(t, g, 4)
		key := groupKey(ids(g))
		assert.False(t, seen[key], "duplicate grouping %v", ids(g))
		seen[key] = true

		distinct := make(map[string]bool)
		for _, p := range g {
			distinct[p.ID] = true
		}
		assert.Len(t, distinct, 4)
	}
}

func TestGenerate_SamplingIsReproducibleWithSameSeed(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	bench := f.CreateBench(t, skillsUpTo(18)...)

	first, err := NewCandidateGenerator(DefaultGeneratorConfig, rand.New(rand.NewSource(99))).Generate(bench, 4)
	require.NoError(t, err)
	second, err := NewCandidateGenerator(DefaultGeneratorConfig, rand.New(rand.NewSource(99))).Generate(bench, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_AttemptBudgetStopsDuplicateDraws(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	bench := f.CreateBench(t, skillsUpTo(16)...)
	gen := NewCandidateGenerator(GeneratorConfig{
		ExhaustiveThreshold: 12,
		SampleBudget:        100,
		AttemptBudget:       50,
	}, firstChoiceRand{})

	groups, err := gen.Generate(bench, 4)
	require.NoError(t, err)
	require.Len(t, groups, 1, "every draw lands on the same lowest-skill group")
}

func TestGenerate_LargeBenchWithoutRandomSource(t *testing.T) {
	t.Parallel()

	f := fixtures.New()
	_, err := NewCandidateGenerator(DefaultGeneratorConfig, nil).Generate(f.CreateBench(t, skillsUpTo(13)...), 4)
	assert.ErrorIs(t, err, ErrMissingRandomSource)
}
