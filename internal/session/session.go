package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/forgo/courtside/matchmaker/internal/model"
	"github.com/forgo/courtside/matchmaker/internal/service"
)

// ErrInvalidDocument wraps field-level validation failures
var ErrInvalidDocument = errors.New("invalid session document")

// Document is one club night as the courtplan CLI sees it: the bench,
// finished matches, policy inputs and the courts to fill
type Document struct {
	Players         []model.Player               `json:"players"`
	SkillScale      model.SkillScale             `json:"skill_scale,omitempty"`
	History         []model.CompletedMatchRecord `json:"history,omitempty"`
	Blacklist       []model.BlacklistEntry       `json:"blacklist,omitempty"`
	Courts          []int                        `json:"courts,omitempty"`
	PlayersPerMatch int                          `json:"players_per_match"`
	Profile         string                       `json:"profile,omitempty"`
	Weights         *model.ScoringWeights        `json:"weights,omitempty"` // Overrides the profile's weights
	Policy          *model.PolicyConfig          `json:"policy,omitempty"`  // Overrides the profile's policy
	Now             *time.Time                   `json:"now,omitempty"`     // Pins the clock for reproducible runs
}

// Settings are the weights and policy a document resolves to
type Settings struct {
	Profile string
	Weights model.ScoringWeights
	Policy  model.PolicyConfig
}

// Decode reads a document from r, rejecting unknown fields
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &doc, nil
}

// LoadFile reads a document from path, or from stdin when path is "-"
func LoadFile(path string) (*Document, error) {
	if path == "-" || path == "" {
		return Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Validate checks the document's own consistency. The engine validates
// weights and policy separately once they are resolved.
func (d *Document) Validate() []model.FieldError {
	var errors []model.FieldError

	if d.SkillScale != "" && d.SkillScale != model.SkillScaleNumeric && d.SkillScale != model.SkillScaleTiered {
		errors = append(errors, model.FieldError{Field: "skill_scale", Message: "skill_scale must be 'numeric' or 'tiered'"})
	}
	if !model.IsValidPlayersPerMatch(d.PlayersPerMatch) {
		errors = append(errors, model.FieldError{Field: "players_per_match", Message: "players_per_match must be 2 or 4"})
	}

	known := make(map[string]bool, len(d.Players))
	for i, p := range d.Players {
		field := fmt.Sprintf("players[%d]", i)
		if p.ID == "" {
			errors = append(errors, model.FieldError{Field: field + ".id", Message: "id is required"})
			continue
		}
		if known[p.ID] {
			errors = append(errors, model.FieldError{Field: field + ".id", Message: "duplicate player id " + p.ID})
		}
		known[p.ID] = true
		if p.Gender != "" && !p.Gender.IsValid() {
			errors = append(errors, model.FieldError{Field: field + ".gender", Message: "gender must be male, female, other or unspecified"})
		}
		if p.Style != "" && !p.Style.IsValid() {
			errors = append(errors, model.FieldError{Field: field + ".style", Message: "style must be open, mixed or level"})
		}
	}

	courts := make(map[int]bool, len(d.Courts))
	for i, c := range d.Courts {
		field := fmt.Sprintf("courts[%d]", i)
		if c <= 0 {
			errors = append(errors, model.FieldError{Field: field, Message: "court numbers must be positive"})
		}
		if courts[c] {
			errors = append(errors, model.FieldError{Field: field, Message: fmt.Sprintf("duplicate court %d", c)})
		}
		courts[c] = true
	}

	for i, rec := range d.History {
		if len(rec.PlayerIDs) == 0 {
			errors = append(errors, model.FieldError{Field: fmt.Sprintf("history[%d].player_ids", i), Message: "player_ids is required"})
		}
	}

	for i, e := range d.Blacklist {
		field := fmt.Sprintf("blacklist[%d]", i)
		if e.PlayerID == "" || e.BlacklistedID == "" {
			errors = append(errors, model.FieldError{Field: field, Message: "player_id and blacklisted_id are required"})
		}
		if !e.Type.IsValid() {
			errors = append(errors, model.FieldError{Field: field + ".type", Message: "type must be 'partner' or 'opponent'"})
		}
	}

	return errors
}

// Err runs Validate and joins any failures into a single error
func (d *Document) Err() error {
	fieldErrs := d.Validate()
	if len(fieldErrs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(fieldErrs)+1)
	errs = append(errs, ErrInvalidDocument)
	for _, fe := range fieldErrs {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}

// Bench returns the players with skills normalized onto 1-10 and blank
// genders treated as unspecified
func (d *Document) Bench() []model.Player {
	bench := make([]model.Player, len(d.Players))
	for i, p := range d.Players {
		p.Skill = model.NormalizeSkill(d.SkillScale, p.Skill)
		if p.Gender == "" {
			p.Gender = model.GenderUnspecified
		}
		bench[i] = p
	}
	return bench
}

// Lookup resolves bench players by ID, in the order given
func (d *Document) Lookup(ids []string) ([]model.Player, error) {
	byID := make(map[string]model.Player, len(d.Players))
	for _, p := range d.Bench() {
		byID[p.ID] = p
	}

	out := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", service.ErrUnknownPlayer, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// Resolve picks the document's profile, or defaultProfile when it names
// none, and applies any inline weights or policy over it. Document-level
// blacklist entries are appended to the policy's.
func (d *Document) Resolve(registry *service.ProfileRegistry, defaultProfile string) (*Settings, error) {
	name := d.Profile
	if name == "" {
		name = defaultProfile
	}
	profile, err := registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		Profile: profile.Slug,
		Weights: profile.Weights,
		Policy:  profile.Policy,
	}
	if d.Weights != nil {
		settings.Weights = *d.Weights
	}
	if d.Policy != nil {
		settings.Policy = *d.Policy
	}

	blacklist := make([]model.BlacklistEntry, 0, len(settings.Policy.Blacklist)+len(d.Blacklist))
	blacklist = append(blacklist, settings.Policy.Blacklist...)
	blacklist = append(blacklist, d.Blacklist...)
	settings.Policy.Blacklist = blacklist

	return settings, nil
}

// Clock returns the pinned time when the document has one
func (d *Document) Clock() func() time.Time {
	if d.Now == nil {
		return nil
	}
	now := *d.Now
	return func() time.Time { return now }
}

// GenerateRequest builds a full allocation request
func (d *Document) GenerateRequest(s *Settings) service.GenerateMatchesRequest {
	return service.GenerateMatchesRequest{
		Bench:           d.Bench(),
		History:         d.History,
		Courts:          d.Courts,
		Weights:         s.Weights,
		Policy:          s.Policy,
		PlayersPerMatch: d.PlayersPerMatch,
	}
}

// RegenerateRequest builds a single-court request that leaves committed
// players where they are
func (d *Document) RegenerateRequest(s *Settings, court int, committed []string) service.RegenerateCourtRequest {
	return service.RegenerateCourtRequest{
		Bench:           d.Bench(),
		History:         d.History,
		Court:           court,
		Committed:       committed,
		Weights:         s.Weights,
		Policy:          s.Policy,
		PlayersPerMatch: d.PlayersPerMatch,
	}
}

// ReplacementRequest builds a repair request. The pool is the bench
// minus the fixed players and anyone committed to another court.
func (d *Document) ReplacementRequest(s *Settings, fixed, committed []string) service.ReplacementRequest {
	bench := d.Bench()

	exclude := make(map[string]bool, len(fixed)+len(committed))
	for _, id := range fixed {
		exclude[id] = true
	}
	for _, id := range committed {
		exclude[id] = true
	}
	pool := make([]model.Player, 0, len(bench))
	for _, p := range bench {
		if !exclude[p.ID] {
			pool = append(pool, p)
		}
	}

	return service.ReplacementRequest{
		FixedPlayerIDs:  fixed,
		Roster:          bench,
		Pool:            pool,
		History:         d.History,
		Weights:         s.Weights,
		Policy:          s.Policy,
		PlayersPerMatch: d.PlayersPerMatch,
	}
}
