package service

import (
	"sort"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// RandomSource is the subset of *rand.Rand the generator needs.
// Injecting it keeps sampling reproducible in tests.
type RandomSource interface {
	Intn(n int) int
	Perm(n int) []int
}

// GeneratorConfig bounds candidate generation
type GeneratorConfig struct {
	// ExhaustiveThreshold is the largest bench enumerated in full
	ExhaustiveThreshold int
	// SampleBudget caps distinct groupings drawn from larger benches
	SampleBudget int
	// AttemptBudget caps draws, including duplicates
	AttemptBudget int
}

// DefaultGeneratorConfig provides sensible defaults
var DefaultGeneratorConfig = GeneratorConfig{
	ExhaustiveThreshold: 12,
	SampleBudget:        100,
	AttemptBudget:       2000,
}

// sampleWindowFactor sizes the skill-adjacent window a sample is drawn from
const sampleWindowFactor = 3

// CandidateGenerator produces eligible groupings from a bench
type CandidateGenerator struct {
	config GeneratorConfig
	rng    RandomSource
}

// NewCandidateGenerator creates a generator. rng may be nil when every
// bench is within the exhaustive threshold.
func NewCandidateGenerator(cfg GeneratorConfig, rng RandomSource) *CandidateGenerator {
	if cfg.ExhaustiveThreshold <= 0 {
		cfg.ExhaustiveThreshold = DefaultGeneratorConfig.ExhaustiveThreshold
	}
	if cfg.SampleBudget <= 0 {
		cfg.SampleBudget = DefaultGeneratorConfig.SampleBudget
	}
	if cfg.AttemptBudget <= 0 {
		cfg.AttemptBudget = DefaultGeneratorConfig.AttemptBudget
	}
	return &CandidateGenerator{config: cfg, rng: rng}
}

// Generate returns distinct groupings of size players. Small benches are
// enumerated exhaustively; larger ones are sampled.
func (g *CandidateGenerator) Generate(bench []model.Player, size int) ([][]model.Player, error) {
	if size <= 0 || len(bench) < size {
		return nil, nil
	}
	if len(bench) <= g.config.ExhaustiveThreshold {
		return enumerate(bench, size), nil
	}
	if g.rng == nil {
		return nil, ErrMissingRandomSource
	}
	return g.sample(bench, size), nil
}

// enumerate lists every combination of size players in ID order
func enumerate(bench []model.Player, size int) [][]model.Player {
	sorted := make([]model.Player, len(bench))
	copy(sorted, bench)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var out [][]model.Player
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}

	n := len(sorted)
	for {
		group := make([]model.Player, size)
		for i, k := range idx {
			group[i] = sorted[k]
		}
		out = append(out, group)

		// Advance to the next combination
		i := size - 1
		for i >= 0 && idx[i] == n-size+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// sample draws random groupings biased toward players of similar skill.
// Most draws come from a window of skill-adjacent players; every fourth
// draw spans the whole bench so outliers still get considered.
func (g *CandidateGenerator) sample(bench []model.Player, size int) [][]model.Player {
	sorted := make([]model.Player, len(bench))
	copy(sorted, bench)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := model.ClampSkill(sorted[i].Skill), model.ClampSkill(sorted[j].Skill)
		if si != sj {
			return si < sj
		}
		return sorted[i].ID < sorted[j].ID
	})

	n := len(sorted)
	window := size * sampleWindowFactor
	if window > n {
		window = n
	}

	seen := make(map[string]bool)
	var out [][]model.Player
	for attempt := 0; attempt < g.config.AttemptBudget && len(out) < g.config.SampleBudget; attempt++ {
		span, start := window, 0
		if attempt%4 == 3 {
			span = n
		} else if n > window {
			start = g.rng.Intn(n - window + 1)
		}

		perm := g.rng.Perm(span)[:size]
		sort.Ints(perm)

		group := make([]model.Player, size)
		ids := make([]string, size)
		for i, k := range perm {
			group[i] = sorted[start+k]
			ids[i] = group[i].ID
		}

		key := groupKey(ids)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, group)
	}
	return out
}
