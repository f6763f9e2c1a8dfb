package core

import (
	"time"
)

// CirculationRejectedEventType is the event type identifier.
const CirculationRejectedEventType = "CirculationRejected"

// Commands that can be rejected.
const (
	CommandIssue  = "issue"
	CommandReturn = "return"
)

// CirculationRejected represents an issue or return command that violated a business rule.
type CirculationRejected struct {
	Command    string
	ISBN       ISBNString
	UserID     UserIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildCirculationRejected creates a new CirculationRejected event.
func BuildCirculationRejected(command string, isbn ISBNString, userID int, reason string, occurredAt time.Time) CirculationRejected {
	return CirculationRejected{
		Command:    command,
		ISBN:       isbn,
		UserID:     ToUserIDString(userID),
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e CirculationRejected) IsEventType() string {
	return CirculationRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CirculationRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e CirculationRejected) IsErrorEvent() bool {
	return true
}
