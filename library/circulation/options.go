package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/smart-library-go/journal"
)

var ErrNilStore = errors.New("store must not be nil")
var ErrNilClock = errors.New("clock must not be nil")

// Journal is the part of journal.Journal the Service writes to.
type Journal interface {
	Append(ctx context.Context, entry journal.Entry, additionalEntries ...journal.Entry) error
}

// Logger interface for command outcomes and journal failures.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Service.
type Option func(*Service) error

// WithJournal makes the Service write every domain event to j.
func WithJournal(j Journal) Option {
	return func(s *Service) error {
		s.journal = j
		return nil
	}
}

// WithLogger sets the logger for the Service.
//
// Debug level: every handled command with its outcome
// Warn level: journal writes that failed.
func WithLogger(logger Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithClock replaces time.Now as the source of event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) error {
		if clock == nil {
			return ErrNilClock
		}

		s.clock = clock

		return nil
	}
}

// WithSessionID sets the correlation id written into the metadata of all events of this Service.
func WithSessionID(sessionID uuid.UUID) Option {
	return func(s *Service) error {
		s.sessionID = sessionID
		return nil
	}
}
