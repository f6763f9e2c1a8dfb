package flatfileengine

import (
	"errors"
)

var ErrEmptyDirectory = errors.New("data directory must not be empty")
var ErrEmptyFileName = errors.New("file name must not be empty")

// Logger interface for load summaries and skipped records.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithBooksFileName overrides the default books file name.
func WithBooksFileName(name string) Option {
	return func(e *Engine) error {
		if name == "" {
			return ErrEmptyFileName
		}

		e.booksFileName = name

		return nil
	}
}

// WithUsersFileName overrides the default users file name.
func WithUsersFileName(name string) Option {
	return func(e *Engine) error {
		if name == "" {
			return ErrEmptyFileName
		}

		e.usersFileName = name

		return nil
	}
}

// WithLogger sets the logger for the Engine.
//
// Debug level: file paths and record counts per load/save
// Warn level: malformed lines skipped while loading.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}
