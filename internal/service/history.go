package service

import (
	"sort"
	"time"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// pairKey is an unordered player pair
type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// HistoryIndex holds lookups derived from completed matches.
// It is built once per allocation pass and is read-only afterwards,
// so it can be shared by concurrent scorers.
type HistoryIndex struct {
	pairCounts map[pairKey]int
	lastPlayed map[string]time.Time
}

// BuildHistoryIndex derives pair co-occurrence counts and last completion
// times from the full set of completed match records
func BuildHistoryIndex(records []model.CompletedMatchRecord) *HistoryIndex {
	idx := &HistoryIndex{
		pairCounts: make(map[pairKey]int),
		lastPlayed: make(map[string]time.Time),
	}

	timed := make([]model.CompletedMatchRecord, 0, len(records))
	for _, rec := range records {
		seen := make(map[pairKey]bool)
		for i := 0; i < len(rec.PlayerIDs); i++ {
			for j := i + 1; j < len(rec.PlayerIDs); j++ {
				if rec.PlayerIDs[i] == rec.PlayerIDs[j] {
					continue
				}
				key := newPairKey(rec.PlayerIDs[i], rec.PlayerIDs[j])
				if seen[key] {
					continue
				}
				seen[key] = true
				idx.pairCounts[key]++
			}
		}
		if rec.CompletedAt != nil {
			timed = append(timed, rec)
		}
	}

	// Ascending by completion so the last write per player is the latest
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].CompletedAt.Before(*timed[j].CompletedAt)
	})
	for _, rec := range timed {
		for _, id := range rec.PlayerIDs {
			idx.lastPlayed[id] = *rec.CompletedAt
		}
	}

	return idx
}

// PairCount returns how many completed matches included both players
func (h *HistoryIndex) PairCount(a, b string) int {
	if h == nil || a == b {
		return 0
	}
	return h.pairCounts[newPairKey(a, b)]
}

// LastPlayed returns the most recent completion time for a player
func (h *HistoryIndex) LastPlayed(playerID string) (time.Time, bool) {
	if h == nil {
		return time.Time{}, false
	}
	t, ok := h.lastPlayed[playerID]
	return t, ok
}

// RestMinutes returns the minutes a player has been off court at now.
// Players without history get defaultMinutes.
func (h *HistoryIndex) RestMinutes(playerID string, now time.Time, defaultMinutes float64) float64 {
	last, ok := h.LastPlayed(playerID)
	if !ok {
		return defaultMinutes
	}
	minutes := now.Sub(last).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Pairs returns the number of distinct pairs recorded
func (h *HistoryIndex) Pairs() int {
	if h == nil {
		return 0
	}
	return len(h.pairCounts)
}
