// Package fixtures provides test data factories for the matchmaking engine.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions.
//
// Usage:
//
//	f := fixtures.New()
//	p := f.CreatePlayer(t, fixtures.WithSkill(7))
//	bench := f.CreateBench(t, 5, 5, 6, 6)
package fixtures

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// Factory creates test entities
type Factory struct {
	seq int
}

// New creates a new fixture factory
func New() *Factory {
	return &Factory{}
}

// ============================================================================
// Player Fixtures
// ============================================================================

// PlayerOpts customizes player creation
type PlayerOpts struct {
	ID     string
	Name   string
	Gender model.Gender
	Skill  int
	Style  model.PlayStyle
}

// WithID sets the player ID
func WithID(id string) func(*PlayerOpts) {
	return func(o *PlayerOpts) { o.ID = id }
}

// WithSkill sets the numeric skill level
func WithSkill(skill int) func(*PlayerOpts) {
	return func(o *PlayerOpts) { o.Skill = skill }
}

// WithGender sets the player's gender
func WithGender(g model.Gender) func(*PlayerOpts) {
	return func(o *PlayerOpts) { o.Gender = g }
}

// WithStyle sets the play-style preference
func WithStyle(s model.PlayStyle) func(*PlayerOpts) {
	return func(o *PlayerOpts) { o.Style = s }
}

// CreatePlayer creates a player with optional customizations.
// Without WithID the player gets a random UUID.
func (f *Factory) CreatePlayer(t *testing.T, opts ...func(*PlayerOpts)) model.Player {
	t.Helper()

	f.seq++
	o := &PlayerOpts{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("Player %d", f.seq),
		Gender: model.GenderMale,
		Skill:  5,
		Style:  model.PlayStyleOpen,
	}
	for _, fn := range opts {
		fn(o)
	}

	return model.Player{
		ID:     o.ID,
		Name:   o.Name,
		Gender: o.Gender,
		Skill:  o.Skill,
		Style:  o.Style,
	}
}

// CreateBench creates one player per skill with readable sequential IDs
// (p01, p02, ...) so tie-break order is predictable
func (f *Factory) CreateBench(t *testing.T, skills ...int) []model.Player {
	t.Helper()

	bench := make([]model.Player, len(skills))
	for i, skill := range skills {
		bench[i] = f.CreatePlayer(t, WithID(fmt.Sprintf("p%02d", i+1)), WithSkill(skill))
	}
	return bench
}

// ============================================================================
// History Fixtures
// ============================================================================

// CreateRecord creates a completed match record finished at completedAt
func CreateRecord(completedAt time.Time, playerIDs ...string) model.CompletedMatchRecord {
	at := completedAt
	return model.CompletedMatchRecord{
		PlayerIDs:   playerIDs,
		CompletedAt: &at,
	}
}

// CreateUntimedRecord creates a record without a completion timestamp
func CreateUntimedRecord(playerIDs ...string) model.CompletedMatchRecord {
	return model.CompletedMatchRecord{PlayerIDs: playerIDs}
}

// Repeat returns n copies of a record
func Repeat(rec model.CompletedMatchRecord, n int) []model.CompletedMatchRecord {
	out := make([]model.CompletedMatchRecord, n)
	for i := range out {
		out[i] = rec
	}
	return out
}
