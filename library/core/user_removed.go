package core

import (
	"time"
)

// UserRemovedEventType is the event type identifier.
const UserRemovedEventType = "UserRemoved"

// UserRemoved represents when a user without loans was removed.
type UserRemoved struct {
	UserID     UserIDString
	OccurredAt OccurredAtTS
}

// BuildUserRemoved creates a new UserRemoved event.
func BuildUserRemoved(userID int, occurredAt time.Time) UserRemoved {
	return UserRemoved{
		UserID:     ToUserIDString(userID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e UserRemoved) IsEventType() string {
	return UserRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRemoved) IsErrorEvent() bool {
	return false
}
