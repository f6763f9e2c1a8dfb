// Package postgresjournal implements journal.Journal on a PostgreSQL table.
//
// The table keeps one row per entry: a BIGSERIAL sequence number, the entry type, the time it
// occurred, and payload plus metadata as JSONB. Filter predicates are translated into JSONB
// containment (payload @> '{"key":"value"}'), which a GIN index on payload serves well.
//
// Three connection types are supported through the same API:
//
//	j, err := postgresjournal.NewJournalFromPGXPool(pool)
//	j, err := postgresjournal.NewJournalFromSQLDB(db)   // database/sql with lib/pq
//	j, err := postgresjournal.NewJournalFromSQLX(dbx)
//
// CreateTable creates the table and the index if they do not exist yet.
package postgresjournal
