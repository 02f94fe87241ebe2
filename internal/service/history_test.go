package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forgo/courtside/matchmaker/internal/model"
	"github.com/forgo/courtside/matchmaker/internal/testing/fixtures"
)

var testNow = time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC)

// ============================================================================
// BuildHistoryIndex Tests
// ============================================================================

func TestBuildHistoryIndex_CountsEveryPairRegardlessOfTeam(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateRecord(testNow.Add(-time.Hour), "a", "b", "c", "d"),
		fixtures.CreateRecord(testNow.Add(-30*time.Minute), "a", "c", "b", "e"),
	})

	assert.Equal(t, 2, idx.PairCount("a", "b"), "partners then opponents")
	assert.Equal(t, 2, idx.PairCount("b", "a"), "pairs are unordered")
	assert.Equal(t, 2, idx.PairCount("a", "c"))
	assert.Equal(t, 1, idx.PairCount("c", "d"))
	assert.Equal(t, 1, idx.PairCount("b", "e"))
	assert.Equal(t, 0, idx.PairCount("d", "e"))
	assert.Equal(t, 9, idx.Pairs())
}

func TestBuildHistoryIndex_UntimedRecordsCountPairsOnly(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateUntimedRecord("a", "b"),
	})

	assert.Equal(t, 1, idx.PairCount("a", "b"))
	_, ok := idx.LastPlayed("a")
	assert.False(t, ok)
}

func TestBuildHistoryIndex_LastPlayedIsLatestCompletion(t *testing.T) {
	t.Parallel()

	early := testNow.Add(-2 * time.Hour)
	late := testNow.Add(-20 * time.Minute)
	// Deliberately out of order
	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateRecord(late, "a", "b"),
		fixtures.CreateRecord(early, "a", "c"),
	})

	last, ok := idx.LastPlayed("a")
	assert.True(t, ok)
	assert.Equal(t, late, last)

	last, ok = idx.LastPlayed("c")
	assert.True(t, ok)
	assert.Equal(t, early, last)
}

func TestBuildHistoryIndex_IgnoresRepeatedIDWithinRecord(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateUntimedRecord("a", "a", "b", "b"),
	})

	assert.Equal(t, 0, idx.PairCount("a", "a"))
	assert.Equal(t, 1, idx.PairCount("a", "b"))
}

// ============================================================================
// RestMinutes Tests
// ============================================================================

func TestRestMinutes_DefaultsWithoutHistory(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex(nil)
	assert.Equal(t, model.DefaultRestMinutes, idx.RestMinutes("nobody", testNow, model.DefaultRestMinutes))
}

func TestRestMinutes_ElapsedSinceLastMatch(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateRecord(testNow.Add(-12*time.Minute), "a", "b"),
	})
	assert.InDelta(t, 12.0, idx.RestMinutes("a", testNow, 60), 1e-9)
}

func TestRestMinutes_FutureCompletionClampsToZero(t *testing.T) {
	t.Parallel()

	idx := BuildHistoryIndex([]model.CompletedMatchRecord{
		fixtures.CreateRecord(testNow.Add(5*time.Minute), "a", "b"),
	})
	assert.Equal(t, 0.0, idx.RestMinutes("a", testNow, 60))
}

func TestHistoryIndex_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var idx *HistoryIndex
	assert.Equal(t, 0, idx.PairCount("a", "b"))
	assert.Equal(t, 0, idx.Pairs())
	assert.Equal(t, 45.0, idx.RestMinutes("a", testNow, 45))
}
