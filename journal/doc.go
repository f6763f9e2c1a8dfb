// Package journal defines an append-only journal of circulation entries and an in-memory implementation.
//
// An Entry is a scalar DTO (type, time, JSON payload, JSON metadata) so that the journal stays
// agnostic of the domain events written into it. Entries are read back with a Filter built by
// BuildFilter:
//
//	filter := journal.BuildFilter().
//		OfTypes("BookIssuedToUser", "BookReturnedByUser").
//		WithAnyPredicateOf(journal.P("ISBN", "111")).
//		Build()
//
//	entries, err := j.Query(ctx, filter)
//
// Database-backed engines live in sub-packages, e.g. postgresjournal.
package journal
