package core

import (
	"strconv"
	"time"
)

// ISBNString represents an ISBN identifier.
type ISBNString = string

// UserIDString represents a user id in events. Ids are kept as strings so journal predicates can match them.
type UserIDString = string

// EventTypeString represents the type identifier of an event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToUserIDString formats a numeric user id for events.
func ToUserIDString(id int) UserIDString {
	return strconv.Itoa(id)
}
