package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/library/core"
)

var jsonAPI = jsoniter.ConfigFastest

// ErrMappingToEntryFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

// ErrMappingToEntryFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")

// EntryFrom converts a DomainEvent and EventMetadata to a journal.Entry.
func EntryFrom(event core.DomainEvent, metadata EventMetadata) (journal.Entry, error) {
	payloadJSON, err := jsonAPI.Marshal(event)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := jsonAPI.Marshal(metadata)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForMetadata, err)
	}

	entry, err := journal.BuildEntry(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}
