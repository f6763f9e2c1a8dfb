package core

import (
	"time"
)

// BookReturnedByUserEventType is the event type identifier.
const BookReturnedByUserEventType = "BookReturnedByUser"

// BookReturnedByUser represents when a user brought a book back.
type BookReturnedByUser struct {
	ISBN       ISBNString
	UserID     UserIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturnedByUser creates a new BookReturnedByUser event.
func BuildBookReturnedByUser(isbn ISBNString, userID int, occurredAt time.Time) BookReturnedByUser {
	return BookReturnedByUser{
		ISBN:       isbn,
		UserID:     ToUserIDString(userID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturnedByUser) IsEventType() string {
	return BookReturnedByUserEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByUser) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturnedByUser) IsErrorEvent() bool {
	return false
}
