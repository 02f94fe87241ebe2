package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// doublesSplits lists the three ways to partition four players into
// two teams of two. Index 0 is always on the first team.
var doublesSplits = [3][4]int{
	{0, 1, 2, 3},
	{0, 2, 1, 3},
	{0, 3, 1, 2},
}

// blacklistKey identifies one directional blacklist entry
type blacklistKey struct {
	from, to string
	kind     model.BlacklistType
}

// Scorer computes the fitness of candidate groups. A Scorer holds only
// read-only state and is safe for concurrent use.
type Scorer struct {
	index       *HistoryIndex
	weights     model.ScoringWeights
	policy      model.PolicyConfig
	now         time.Time
	defaultRest float64
	blacklist   map[blacklistKey]int
}

// NewScorer creates a scorer over a prebuilt history index.
// The policy is expected to have been normalized by the caller.
func NewScorer(index *HistoryIndex, weights model.ScoringWeights, policy model.PolicyConfig, now time.Time, defaultRest float64) *Scorer {
	bl := make(map[blacklistKey]int, len(policy.Blacklist))
	for _, e := range policy.Blacklist {
		bl[blacklistKey{from: e.PlayerID, to: e.BlacklistedID, kind: e.Type}]++
	}
	return &Scorer{
		index:       index,
		weights:     weights,
		policy:      policy,
		now:         now,
		defaultRest: defaultRest,
		blacklist:   bl,
	}
}

// Score evaluates a singles or doubles group. The returned player order is
// canonical: for doubles the best-balanced split, each team sorted by ID,
// with the team holding the smallest ID first.
func (s *Scorer) Score(players []model.Player) model.GroupScore {
	ordered := canonicalOrder(players)

	var bd model.ScoreBreakdown
	bd.SkillBalance = skillBalance(ordered)
	bd.MatchHistory = s.historyScore(ordered)
	bd.TimeOffCourt = s.restScore(ordered)
	bd.Composition = classifyComposition(ordered)
	bd.Style = s.styleScore(ordered, bd.Composition)

	hits := s.teamBlacklistHits(ordered)
	bd.Blacklist = blacklistScore(hits)

	if s.policy.GenderMatching && s.policy.GenderMatchingMode == model.PolicyModeStrict &&
		bd.Composition == model.CompositionAsymmetric {
		bd.Excluded = true
		bd.Reason = model.ExclusionGender
	} else if s.policy.BlacklistMode == model.PolicyModeStrict && hits > 0 {
		bd.Excluded = true
		bd.Reason = model.ExclusionBlacklist
	}

	return s.finish(ordered, bd)
}

// ScorePartial evaluates a candidate joining an incomplete group. Teams are
// not yet known, so skill is judged against the fixed players' mean and any
// blacklist entry between two members counts.
func (s *Scorer) ScorePartial(fixed []model.Player, candidate model.Player) model.GroupScore {
	group := make([]model.Player, 0, len(fixed)+1)
	group = append(group, fixed...)
	group = append(group, candidate)

	var bd model.ScoreBreakdown
	bd.SkillBalance = 100
	if len(fixed) > 0 {
		mean := 0.0
		for _, p := range fixed {
			mean += float64(model.ClampSkill(p.Skill))
		}
		mean /= float64(len(fixed))
		gap := math.Abs(float64(model.ClampSkill(candidate.Skill)) - mean)
		bd.SkillBalance = clampScore((1 - gap/model.MaxSkillGap) * 100)
	}
	bd.MatchHistory = s.historyScore(group)
	bd.TimeOffCourt = s.restScore(group)
	bd.Composition = model.CompositionUnclassified
	bd.Style = s.styleScore(group, bd.Composition)

	hits := 0
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			hits += s.pairHits(group[i].ID, group[j].ID, model.BlacklistPartner)
			hits += s.pairHits(group[i].ID, group[j].ID, model.BlacklistOpponent)
		}
	}
	bd.Blacklist = blacklistScore(hits)
	if s.policy.BlacklistMode == model.PolicyModeStrict && hits > 0 {
		bd.Excluded = true
		bd.Reason = model.ExclusionBlacklist
	}

	return s.finish(group, bd)
}

// finish blends the sub-scores into the composite
func (s *Scorer) finish(ordered []model.Player, bd model.ScoreBreakdown) model.GroupScore {
	ids := make([]string, len(ordered))
	for i, p := range ordered {
		ids[i] = p.ID
	}

	result := model.GroupScore{PlayerIDs: ids, Breakdown: bd}
	if bd.Excluded {
		return result
	}

	base := s.weights.SkillBalance/100*bd.SkillBalance +
		s.weights.MatchHistory/100*bd.MatchHistory +
		s.weights.TimeOffCourt/100*bd.TimeOffCourt
	policy := bd.Style * bd.Blacklist / 100

	result.Score = clampScore((1-model.PolicyBlendRatio)*base + model.PolicyBlendRatio*policy)
	return result
}

// canonicalOrder sorts by ID and, for doubles, applies the split that
// maximizes skill balance. Earlier splits win ties.
func canonicalOrder(players []model.Player) []model.Player {
	sorted := make([]model.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if len(sorted) != model.DoublesPlayers {
		return sorted
	}

	best := -1.0
	var ordered []model.Player
	for _, split := range doublesSplits {
		candidate := []model.Player{sorted[split[0]], sorted[split[1]], sorted[split[2]], sorted[split[3]]}
		if score := skillBalance(candidate); score > best {
			best = score
			ordered = candidate
		}
	}
	return ordered
}

// skillBalance scores how evenly matched the two sides are
func skillBalance(ordered []model.Player) float64 {
	switch len(ordered) {
	case model.SinglesPlayers:
		gap := math.Abs(float64(model.ClampSkill(ordered[0].Skill) - model.ClampSkill(ordered[1].Skill)))
		return clampScore((1 - gap/model.MaxSkillGap) * 100)
	case model.DoublesPlayers:
		teamA := model.ClampSkill(ordered[0].Skill) + model.ClampSkill(ordered[1].Skill)
		teamB := model.ClampSkill(ordered[2].Skill) + model.ClampSkill(ordered[3].Skill)
		gap := math.Abs(float64(teamA - teamB))
		return clampScore((1 - gap/model.MaxTeamSkillGap) * 100)
	default:
		return 0
	}
}

// historyScore penalizes pairs that have already shared a court
func (s *Scorer) historyScore(group []model.Player) float64 {
	repeats := 0
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			repeats += s.index.PairCount(group[i].ID, group[j].ID)
		}
	}
	penalty := math.Min(float64(repeats)*model.HistoryPenaltyPerRepeat, model.HistoryMaxPenalty)
	return 100 - penalty
}

// restScore rewards groups whose players have been off court longer
func (s *Scorer) restScore(group []model.Player) float64 {
	if len(group) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range group {
		total += s.index.RestMinutes(p.ID, s.now, s.defaultRest)
	}
	avg := total / float64(len(group))
	return math.Min(avg/model.RestSaturationMinutes, 1) * 100
}

// classifyComposition labels the gender makeup of an ordered group
func classifyComposition(ordered []model.Player) model.Composition {
	for _, p := range ordered {
		if !p.Gender.IsBinary() {
			return model.CompositionUnclassified
		}
	}

	switch len(ordered) {
	case model.SinglesPlayers:
		if ordered[0].Gender == ordered[1].Gender {
			return model.CompositionLevel
		}
		return model.CompositionAsymmetric
	case model.DoublesPlayers:
		a0, a1 := ordered[0].Gender, ordered[1].Gender
		b0, b1 := ordered[2].Gender, ordered[3].Gender
		if a0 == a1 && b0 == b1 && a0 == b0 {
			return model.CompositionLevel
		}
		if a0 != a1 && b0 != b1 {
			return model.CompositionMixed
		}
		return model.CompositionAsymmetric
	default:
		return model.CompositionUnclassified
	}
}

// styleScore averages each player's satisfaction with the composition
func (s *Scorer) styleScore(group []model.Player, comp model.Composition) float64 {
	if len(group) == 0 {
		return 0
	}

	bias := 1.0
	switch comp {
	case model.CompositionLevel:
		bias = s.policy.LevelBias
	case model.CompositionMixed:
		bias = s.policy.MixedBias
	case model.CompositionAsymmetric:
		bias = s.policy.AsymmetricBias
	}

	total := 0.0
	for _, p := range group {
		total += math.Min(stylePreferenceScore(p.EffectiveStyle(), comp)*bias, 100)
	}
	score := total / float64(len(group))

	if s.policy.GenderMatching && s.policy.GenderMatchingMode == model.PolicyModePreferred &&
		comp == model.CompositionAsymmetric {
		score *= model.AsymmetricPreferredFactor
	}
	return clampScore(score)
}

// stylePreferenceScore is one player's view of a composition
func stylePreferenceScore(pref model.PlayStyle, comp model.Composition) float64 {
	if comp == model.CompositionUnclassified {
		return model.StyleOpenScore
	}

	switch pref {
	case model.PlayStyleLevel:
		switch comp {
		case model.CompositionLevel:
			return model.StyleMatchScore
		case model.CompositionMixed:
			return model.StyleMismatchScore
		default:
			return model.StyleAsymmetricScore
		}
	case model.PlayStyleMixed:
		switch comp {
		case model.CompositionMixed:
			return model.StyleMatchScore
		case model.CompositionLevel:
			return model.StyleMismatchScore
		default:
			return model.StyleAsymmetricScore
		}
	default:
		return model.StyleOpenScore
	}
}

// teamBlacklistHits counts partner entries between teammates and opponent
// entries across the net
func (s *Scorer) teamBlacklistHits(ordered []model.Player) int {
	if len(s.blacklist) == 0 {
		return 0
	}

	half := len(ordered) / 2
	hits := 0
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			kind := model.BlacklistOpponent
			if (i < half) == (j < half) {
				kind = model.BlacklistPartner
			}
			hits += s.pairHits(ordered[i].ID, ordered[j].ID, kind)
		}
	}
	return hits
}

// pairHits counts entries of the given kind in either direction
func (s *Scorer) pairHits(a, b string, kind model.BlacklistType) int {
	return s.blacklist[blacklistKey{from: a, to: b, kind: kind}] +
		s.blacklist[blacklistKey{from: b, to: a, kind: kind}]
}

func blacklistScore(hits int) float64 {
	return 100 - math.Min(float64(hits)*model.BlacklistPenaltyPerHit, 100)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// groupKey is the canonical sorted-ID key of a grouping
func groupKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// betterScore orders scored groups by score, then by key for determinism
func betterScore(a, b model.GroupScore) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return groupKey(a.PlayerIDs) < groupKey(b.PlayerIDs)
}
