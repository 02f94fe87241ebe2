// Package session reads the JSON session documents the courtplan CLI works
// from.
//
// A document describes one club night: the bench, completed matches, the
// blacklist, the courts to fill and either a named scoring profile or inline
// weights and policy. Documents are validated field by field, mirroring
// request validation elsewhere in the codebase:
//
//	doc, err := session.LoadFile("tonight.json")
//	if err := doc.Err(); err != nil {
//	    // errors.Is(err, session.ErrInvalidDocument)
//	}
//	settings, err := doc.Resolve(registry, cfg.Matchmaking.DefaultProfile)
//	round, err := svc.GenerateMatches(ctx, doc.GenerateRequest(settings))
package session
