// Package fixtures provides test data factories for the matchmaking engine.
//
// # Factory Pattern
//
// Create a factory and build players with sensible defaults:
//
//	f := fixtures.New()
//	p := f.CreatePlayer(t)                          // Male, skill 5, open
//	q := f.CreatePlayer(t, fixtures.WithSkill(8))   // Custom skill
//
// # Benches
//
// CreateBench assigns sequential IDs so tests can assert on tie-break order:
//
//	bench := f.CreateBench(t, 5, 5, 6, 6) // p01..p04
//
// # History
//
// Records are plain values and need no factory:
//
//	rec := fixtures.CreateRecord(now.Add(-10*time.Minute), "p01", "p02")
package fixtures
