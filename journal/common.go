package journal

import (
	"context"
	"errors"
)

var ErrEmptyTableName = errors.New("empty journal table name supplied")
var ErrNilDatabaseConnection = errors.New("database connection is nil")
var ErrQueryingEntriesFailed = errors.New("querying journal entries failed")
var ErrAppendingEntryFailed = errors.New("appending journal entries failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrBuildingEntryFailed = errors.New("building journal entry from db row failed")

// SequenceNumberUint is the position of an Entry in the journal, assigned on append and starting at 1.
type SequenceNumberUint = uint64

// Journal appends entries and queries them back in append order.
type Journal interface {
	// Append stores one or more entries atomically.
	Append(ctx context.Context, entry Entry, additionalEntries ...Entry) error

	// Query returns all entries matching the filter ordered by sequence number.
	Query(ctx context.Context, filter Filter) (Entries, error)
}
