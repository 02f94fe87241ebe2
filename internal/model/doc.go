// Package model defines the data structures shared by the matchmaking engine.
//
// The model package holds bench players, historical match records, scoring
// weights, policy configuration and the engine's output types. Models carry
// json struct tags so the surrounding application and the courtplan CLI can
// exchange them as documents.
//
// # Enumerations
//
// Closed value sets are typed strings with an IsValid method:
//
//	type Gender string
//
//	const (
//	    GenderMale   Gender = "male"
//	    GenderFemale Gender = "female"
//	)
//
// # Team Convention
//
// Player ID slices are team-split by position. For doubles the order is
// [team1p0, team1p1, team2p0, team2p1]; for singles it is [p0, p1].
//
// # Scoring Constants
//
// The constants in scoring.go fix the shape of every sub-score:
//
//	const (
//	    HistoryPenaltyPerRepeat = 15.0
//	    HistoryMaxPenalty       = 90.0
//	    BlacklistPenaltyPerHit  = 20.0
//	)
package model
