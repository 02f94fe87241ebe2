package model

// Gender of a player as recorded by the club
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

// IsValid reports whether g is a known gender value
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnspecified:
		return true
	default:
		return false
	}
}

// IsBinary reports whether g takes part in level/mixed classification
func (g Gender) IsBinary() bool {
	return g == GenderMale || g == GenderFemale
}

// PlayStyle is the kind of doubles game a player prefers
type PlayStyle string

const (
	PlayStyleOpen  PlayStyle = "open"  // Any composition is fine
	PlayStyleMixed PlayStyle = "mixed" // One man and one woman per team
	PlayStyleLevel PlayStyle = "level" // Same-gender teams
)

// IsValid reports whether s is a known play style
func (s PlayStyle) IsValid() bool {
	switch s {
	case PlayStyleOpen, PlayStyleMixed, PlayStyleLevel:
		return true
	default:
		return false
	}
}

// SkillScale is the rating scale a club records skill on
type SkillScale string

const (
	SkillScaleNumeric SkillScale = "numeric" // 1-10
	SkillScaleTiered  SkillScale = "tiered"  // 1 beginner, 2 intermediate, 3 advanced
)

// Skill constraints
const (
	MinSkill = 1
	MaxSkill = 10
	// MaxSkillGap is the widest singles gap on the numeric scale
	MaxSkillGap = MaxSkill - MinSkill
	// MaxTeamSkillGap is the widest gap between two summed doubles pairs
	MaxTeamSkillGap = 2 * MaxSkillGap
)

// tierSkills maps tiered ratings onto the numeric scale
var tierSkills = map[int]int{
	1: 2,
	2: 5,
	3: 8,
}

// NormalizeSkill maps a raw rating on the given scale onto 1-10.
// Out-of-range ratings are clamped rather than rejected.
func NormalizeSkill(scale SkillScale, raw int) int {
	if scale == SkillScaleTiered {
		if raw < 1 {
			raw = 1
		}
		if raw > 3 {
			raw = 3
		}
		return tierSkills[raw]
	}
	return ClampSkill(raw)
}

// ClampSkill keeps a numeric rating inside 1-10
func ClampSkill(skill int) int {
	if skill < MinSkill {
		return MinSkill
	}
	if skill > MaxSkill {
		return MaxSkill
	}
	return skill
}

// Player is a bench player eligible for allocation
type Player struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Gender Gender    `json:"gender"`
	Skill  int       `json:"skill"` // Normalized to 1-10 before scoring
	Style  PlayStyle `json:"style"`
}

// EffectiveStyle returns the player's preference, treating unset as open
func (p Player) EffectiveStyle() PlayStyle {
	if p.Style.IsValid() {
		return p.Style
	}
	return PlayStyleOpen
}
