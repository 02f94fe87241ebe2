package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/courtside/matchmaker/internal/model"
	"github.com/forgo/courtside/matchmaker/internal/service"
)

const sampleDocument = `{
  "players": [
    {"id": "ana", "name": "Ana", "gender": "female", "skill": 3, "style": "mixed"},
    {"id": "ben", "name": "Ben", "gender": "male", "skill": 2},
    {"id": "cat", "name": "Cat", "skill": 1},
    {"id": "dev", "name": "Dev", "gender": "male", "skill": 3, "style": "level"},
    {"id": "eli", "name": "Eli", "gender": "other", "skill": 2}
  ],
  "skill_scale": "tiered",
  "history": [
    {"player_ids": ["ana", "ben", "cat", "dev"], "completed_at": "2026-10-19T18:30:00Z"}
  ],
  "blacklist": [
    {"player_id": "ana", "blacklisted_id": "dev", "type": "partner"}
  ],
  "courts": [1, 2],
  "players_per_match": 4,
  "profile": "Social",
  "now": "2026-10-19T19:00:00Z"
}`

// ============================================================================
// Decoding Tests
// ============================================================================

func TestDecode_SampleDocument(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	assert.Len(t, doc.Players, 5)
	assert.Equal(t, model.SkillScaleTiered, doc.SkillScale)
	assert.Equal(t, []int{1, 2}, doc.Courts)
	require.NotNil(t, doc.Now)
	assert.Empty(t, doc.Validate())
	assert.NoError(t, doc.Err())
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"players": [], "players_per_match": 2, "surface": "wood"}`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Social", doc.Profile)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// ============================================================================
// Validation Tests
// ============================================================================

func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Players: []model.Player{
			{ID: "a", Gender: "robot"},
			{ID: "a", Style: "chaotic"},
			{ID: ""},
		},
		SkillScale:      "stars",
		Courts:          []int{1, 1, 0},
		PlayersPerMatch: 3,
		History:         []model.CompletedMatchRecord{{}},
		Blacklist:       []model.BlacklistEntry{{PlayerID: "a", Type: "rival"}},
	}

	fields := make(map[string]bool)
	for _, fe := range doc.Validate() {
		fields[fe.Field] = true
	}

	for _, want := range []string{
		"skill_scale",
		"players_per_match",
		"players[0].gender",
		"players[1].id",
		"players[1].style",
		"players[2].id",
		"courts[1]",
		"courts[2]",
		"history[0].player_ids",
		"blacklist[0]",
		"blacklist[0].type",
	} {
		assert.True(t, fields[want], "expected a field error for %s", want)
	}

	err := doc.Err()
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "players_per_match")
}

// ============================================================================
// Conversion Tests
// ============================================================================

func TestBench_NormalizesSkillAndGender(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	bench := doc.Bench()
	skills := make(map[string]int)
	for _, p := range bench {
		skills[p.ID] = p.Skill
	}
	assert.Equal(t, map[string]int{"ana": 8, "ben": 5, "cat": 2, "dev": 8, "eli": 5}, skills)
	assert.Equal(t, model.GenderUnspecified, bench[2].Gender)

	// The document itself is left untouched
	assert.Equal(t, 3, doc.Players[0].Skill)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	players, err := doc.Lookup([]string{"dev", "ana"})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "dev", players[0].ID)
	assert.Equal(t, 8, players[1].Skill)

	_, err = doc.Lookup([]string{"zed"})
	assert.ErrorIs(t, err, service.ErrUnknownPlayer)
}

func TestResolve_ProfileAndOverrides(t *testing.T) {
	t.Parallel()

	registry := service.NewProfileRegistry()
	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	settings, err := doc.Resolve(registry, "balanced")
	require.NoError(t, err)
	assert.Equal(t, "social", settings.Profile)
	assert.Equal(t, model.SocialProfile.Weights, settings.Weights)
	require.Len(t, settings.Policy.Blacklist, 1)
	assert.Equal(t, "ana", settings.Policy.Blacklist[0].PlayerID)

	doc.Profile = ""
	doc.Weights = &model.ScoringWeights{SkillBalance: 100}
	doc.Policy = &model.PolicyConfig{GenderMatching: true, GenderMatchingMode: model.PolicyModeStrict}
	settings, err = doc.Resolve(registry, "competitive")
	require.NoError(t, err)
	assert.Equal(t, "competitive", settings.Profile)
	assert.Equal(t, 100.0, settings.Weights.SkillBalance)
	assert.True(t, settings.Policy.GenderMatching)
	assert.Len(t, settings.Policy.Blacklist, 1)

	doc.Profile = "unknown"
	_, err = doc.Resolve(registry, "balanced")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestReplacementRequest_PoolExcludesFixedAndCommitted(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	settings, err := doc.Resolve(service.NewProfileRegistry(), "balanced")
	require.NoError(t, err)

	req := doc.ReplacementRequest(settings, []string{"ana", "ben", "cat"}, []string{"dev"})
	require.Len(t, req.Pool, 1)
	assert.Equal(t, "eli", req.Pool[0].ID)
	assert.Len(t, req.Roster, 5)
	assert.Equal(t, model.DoublesPlayers, req.PlayersPerMatch)
}

func TestDocument_EndToEnd(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	settings, err := doc.Resolve(service.NewProfileRegistry(), "balanced")
	require.NoError(t, err)

	svc := service.NewMatchmakingService(service.MatchmakingServiceConfig{Seed: 1, Now: doc.Clock()})
	round, err := svc.GenerateMatches(t.Context(), doc.GenerateRequest(settings))
	require.NoError(t, err)
	require.Len(t, round.Matches, 1)
	assert.Equal(t, 1, round.Matches[0].CourtNumber)
	assert.Len(t, round.Unassigned, 1)
	assert.Equal(t, time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC), round.GeneratedAt)
}
