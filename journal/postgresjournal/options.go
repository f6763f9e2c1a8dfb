package postgresjournal

import (
	"github.com/AntonStoeckl/smart-library-go/journal"
)

// Logger interface for SQL logging, operation summaries, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL statements with execution timing
// Info level: entry counts and durations
// Warn level: failures to close result rows
// Error level: failures that make an operation fail.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}
