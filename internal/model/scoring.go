package model

import "math"

// ScoringWeights are proportions of a 100-point scale for the three
// primary criteria. Each is divided by 100 when blended.
type ScoringWeights struct {
	SkillBalance float64 `json:"skill_balance"`
	MatchHistory float64 `json:"match_history"`
	TimeOffCourt float64 `json:"time_off_court"`
}

// Sum returns the total of all three weights
func (w ScoringWeights) Sum() float64 {
	return w.SkillBalance + w.MatchHistory + w.TimeOffCourt
}

// IsValid reports whether every weight is a finite non-negative number
func (w ScoringWeights) IsValid() bool {
	for _, v := range []float64{w.SkillBalance, w.MatchHistory, w.TimeOffCourt} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// PolicyMode selects soft-penalty or hard-exclusion treatment of a constraint
type PolicyMode string

const (
	PolicyModePreferred PolicyMode = "preferred"
	PolicyModeStrict    PolicyMode = "strict"
)

// IsValid reports whether m is a known policy mode
func (m PolicyMode) IsValid() bool {
	return m == PolicyModePreferred || m == PolicyModeStrict
}

// BlacklistType says which relationship a blacklist entry forbids
type BlacklistType string

const (
	BlacklistPartner  BlacklistType = "partner"
	BlacklistOpponent BlacklistType = "opponent"
)

// IsValid reports whether t is a known blacklist type
func (t BlacklistType) IsValid() bool {
	return t == BlacklistPartner || t == BlacklistOpponent
}

// BlacklistEntry is directional: PlayerID does not want BlacklistedID
// as a partner or opponent. The reverse entry is stored separately.
type BlacklistEntry struct {
	PlayerID      string        `json:"player_id"`
	BlacklistedID string        `json:"blacklisted_id"`
	Type          BlacklistType `json:"type"`
}

// PolicyConfig layers hard and soft constraints over the weighted score
type PolicyConfig struct {
	GenderMatching     bool             `json:"gender_matching"`
	GenderMatchingMode PolicyMode       `json:"gender_matching_mode"`
	BlacklistMode      PolicyMode       `json:"blacklist_mode"`
	Blacklist          []BlacklistEntry `json:"blacklist,omitempty"`
	// Bias multipliers applied to per-player style scores (default 1)
	LevelBias      float64 `json:"level_bias,omitempty"`
	MixedBias      float64 `json:"mixed_bias,omitempty"`
	AsymmetricBias float64 `json:"asymmetric_bias,omitempty"`
}

// Composition classifies the gender makeup of a candidate's teams
type Composition string

const (
	CompositionLevel        Composition = "level"
	CompositionMixed        Composition = "mixed"
	CompositionAsymmetric   Composition = "asymmetric"
	CompositionUnclassified Composition = "unclassified" // Some gender is not male/female
)

// Scoring constants
const (
	// PolicyBlendRatio is the share of the composite taken by the policy score
	PolicyBlendRatio = 0.2

	HistoryPenaltyPerRepeat = 15.0
	HistoryMaxPenalty       = 90.0

	BlacklistPenaltyPerHit = 20.0

	// RestSaturationMinutes is the rest after which time-off-court scores 100
	RestSaturationMinutes = 30.0
	// DefaultRestMinutes is assumed for players without history
	DefaultRestMinutes = 60.0

	StyleMatchScore      = 100.0
	StyleMismatchScore   = 40.0
	StyleAsymmetricScore = 20.0
	StyleOpenScore       = 90.0

	// AsymmetricPreferredFactor scales the style score of asymmetric
	// compositions when gender matching is preferred
	AsymmetricPreferredFactor = 0.5
)

// ExclusionReason explains why a strict policy removed a candidate
type ExclusionReason string

const (
	ExclusionNone      ExclusionReason = ""
	ExclusionGender    ExclusionReason = "gender_asymmetric"
	ExclusionBlacklist ExclusionReason = "blacklist"
)

// ScoreBreakdown records every sub-score of a candidate
type ScoreBreakdown struct {
	SkillBalance float64         `json:"skill_balance"`
	MatchHistory float64         `json:"match_history"`
	TimeOffCourt float64         `json:"time_off_court"`
	Style        float64         `json:"style"`
	Blacklist    float64         `json:"blacklist"`
	Composition  Composition     `json:"composition"`
	Excluded     bool            `json:"excluded"`
	Reason       ExclusionReason `json:"reason,omitempty"`
}

// GroupScore is the scored, canonically ordered form of a group
type GroupScore struct {
	Score     float64        `json:"score"`
	PlayerIDs []string       `json:"player_ids"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoringProfile is a named set of weights and policy a club selects
type ScoringProfile struct {
	Name    string         `json:"name"`
	Slug    string         `json:"slug"`
	Weights ScoringWeights `json:"weights"`
	Policy  PolicyConfig   `json:"policy"`
}

// Built-in profiles
var (
	BalancedProfile = ScoringProfile{
		Name:    "Balanced",
		Weights: ScoringWeights{SkillBalance: 40, MatchHistory: 30, TimeOffCourt: 30},
		Policy:  DefaultPolicyConfig,
	}
	CompetitiveProfile = ScoringProfile{
		Name:    "Competitive",
		Weights: ScoringWeights{SkillBalance: 70, MatchHistory: 15, TimeOffCourt: 15},
		Policy:  DefaultPolicyConfig,
	}
	SocialProfile = ScoringProfile{
		Name:    "Social",
		Weights: ScoringWeights{SkillBalance: 20, MatchHistory: 50, TimeOffCourt: 30},
		Policy:  DefaultPolicyConfig,
	}
)

// DefaultPolicyConfig has gender matching off and a preferred blacklist
var DefaultPolicyConfig = PolicyConfig{
	GenderMatching:     false,
	GenderMatchingMode: PolicyModePreferred,
	BlacklistMode:      PolicyModePreferred,
	LevelBias:          1,
	MixedBias:          1,
	AsymmetricBias:     1,
}
