package shell

import (
	"errors"

	"github.com/AntonStoeckl/smart-library-go/journal"
	"github.com/AntonStoeckl/smart-library-go/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized entry types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts journal entries to DomainEvents, failing on the first entry that cannot be mapped.
func DomainEventsFrom(entries journal.Entries) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(entries))

	for _, entry := range entries {
		domainEvent, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a journal.Entry to its corresponding DomainEvent.
func DomainEventFrom(entry journal.Entry) (core.DomainEvent, error) {
	switch entry.EntryType {
	case core.BookAddedToCatalogEventType:
		return unmarshalEvent[core.BookAddedToCatalog](entry.PayloadJSON)

	case core.BookRemovedFromCatalogEventType:
		return unmarshalEvent[core.BookRemovedFromCatalog](entry.PayloadJSON)

	case core.UserRegisteredEventType:
		return unmarshalEvent[core.UserRegistered](entry.PayloadJSON)

	case core.UserRemovedEventType:
		return unmarshalEvent[core.UserRemoved](entry.PayloadJSON)

	case core.BookIssuedToUserEventType:
		return unmarshalEvent[core.BookIssuedToUser](entry.PayloadJSON)

	case core.BookReturnedByUserEventType:
		return unmarshalEvent[core.BookReturnedByUser](entry.PayloadJSON)

	case core.CirculationRejectedEventType:
		return unmarshalEvent[core.CirculationRejected](entry.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalEvent[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsonAPI.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
