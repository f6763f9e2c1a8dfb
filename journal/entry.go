package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// Entries is an alias type for a slice of Entry.
type Entries = []Entry

// Entry is one journal record.
//
// SequenceNumber is zero until the entry was appended; entries returned by Query always carry it.
// Construct entries with BuildEntry or BuildEntryWithEmptyMetadata.
type Entry struct {
	SequenceNumber SequenceNumberUint
	EntryType      string
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
}

// BuildEntry is a factory method for Entry.
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildEntry(entryType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (Entry, error) {
	if !jsoniter.Valid(payloadJSON) {
		return Entry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.Valid(metadataJSON) {
		return Entry{}, ErrInvalidMetadataJSON
	}

	return Entry{
		EntryType:    entryType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildEntryWithEmptyMetadata is a factory method for Entry with "{}" as metadata.
func BuildEntryWithEmptyMetadata(entryType string, occurredAt time.Time, payloadJSON []byte) (Entry, error) {
	return BuildEntry(entryType, occurredAt, payloadJSON, []byte("{}"))
}

// withSequenceNumber returns a copy with the given sequence number.
func (e Entry) withSequenceNumber(sequenceNumber SequenceNumberUint) Entry {
	e.SequenceNumber = sequenceNumber

	return e
}
