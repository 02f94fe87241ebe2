package model

import "time"

// Players per match
const (
	SinglesPlayers = 2
	DoublesPlayers = 4
)

// IsValidPlayersPerMatch reports whether n is singles or doubles
func IsValidPlayersPerMatch(n int) bool {
	return n == SinglesPlayers || n == DoublesPlayers
}

// CompletedMatchRecord is a finished match supplied as history.
// For doubles the order is [team1p0, team1p1, team2p0, team2p1].
type CompletedMatchRecord struct {
	PlayerIDs   []string   `json:"player_ids"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MatchCandidate is a proposed match for one court
type MatchCandidate struct {
	CourtNumber int             `json:"court_number"`
	PlayerIDs   []string        `json:"player_ids"` // Team split by position
	Score       float64         `json:"score"`      // 0-100
	Breakdown   *ScoreBreakdown `json:"breakdown,omitempty"`
}

// TeamA returns the first team's player IDs
func (m *MatchCandidate) TeamA() []string {
	return m.PlayerIDs[:len(m.PlayerIDs)/2]
}

// TeamB returns the second team's player IDs
func (m *MatchCandidate) TeamB() []string {
	return m.PlayerIDs[len(m.PlayerIDs)/2:]
}

// AllocationRound is the result of one allocation pass across courts
type AllocationRound struct {
	ID              string           `json:"id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	PlayersPerMatch int              `json:"players_per_match"`
	Matches         []MatchCandidate `json:"matches"`
	Unassigned      []string         `json:"unassigned,omitempty"` // Bench IDs left off court
}

// Replacement is the best single addition found for an open slot
type Replacement struct {
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}
