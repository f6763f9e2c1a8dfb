package shell

import (
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/smart-library-go/journal"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating all events of one session.
type CorrelationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// BuildCommandMetadata creates EventMetadata for an event caused directly by a command:
// a fresh message id that also serves as causation id, correlated to the session.
func BuildCommandMetadata(sessionID uuid.UUID) EventMetadata {
	messageID := uuid.New()

	return BuildEventMetadata(messageID, messageID, sessionID)
}

// EventMetadataFrom extracts EventMetadata from a journal.Entry.
func EventMetadataFrom(entry journal.Entry) (EventMetadata, error) {
	metadata := new(EventMetadata)

	if err := jsonAPI.Unmarshal(entry.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
