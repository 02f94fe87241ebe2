// Package service implements the badminton matchmaking engine.
//
// The engine proposes one group of players per court from the bench. It is
// made of small pieces that are each usable on their own:
//
//   - HistoryIndex: pair co-occurrence counts and last-played times, built
//     once per pass from completed matches
//   - Scorer: the 0-100 fitness of a singles or doubles group, with its
//     canonical team split
//   - CandidateGenerator: exhaustive or sampled groupings from a bench
//   - CourtAllocator: greedy, court-by-court selection of the best group
//   - SlotRepairer: the best single addition to a partially fixed group
//
// # Service Pattern
//
// MatchmakingService wires the pieces together behind the entry points the
// application calls. Like the other services it is built from a config
// struct whose optional fields fall back to defaults:
//
//	svc := NewMatchmakingService(MatchmakingServiceConfig{
//	    Generator:      DefaultGeneratorConfig,
//	    ScoringWorkers: 4,
//	    Seed:           42,
//	})
//	round, err := svc.GenerateMatches(ctx, GenerateMatchesRequest{
//	    Bench:           bench,
//	    History:         history,
//	    Courts:          []int{1, 2},
//	    Weights:         profile.Weights,
//	    Policy:          profile.Policy,
//	    PlayersPerMatch: model.DoublesPlayers,
//	})
//
// # Error Handling
//
// Only caller contract violations are errors, returned as wrapped sentinels:
//
//	if errors.Is(err, service.ErrInvalidPlayersPerMatch) {
//	    // Reject the request
//	}
//
// A bench too small for a court, or an empty replacement pool, is not an
// error; the court is simply left without a proposal.
package service
