package core

import (
	"time"
)

// BookIssuedToUserEventType is the event type identifier.
const BookIssuedToUserEventType = "BookIssuedToUser"

// BookIssuedToUser represents when a book was lent to a user.
type BookIssuedToUser struct {
	ISBN       ISBNString
	UserID     UserIDString
	OccurredAt OccurredAtTS
}

// BuildBookIssuedToUser creates a new BookIssuedToUser event.
func BuildBookIssuedToUser(isbn ISBNString, userID int, occurredAt time.Time) BookIssuedToUser {
	return BookIssuedToUser{
		ISBN:       isbn,
		UserID:     ToUserIDString(userID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookIssuedToUser) IsEventType() string {
	return BookIssuedToUserEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookIssuedToUser) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookIssuedToUser) IsErrorEvent() bool {
	return false
}
