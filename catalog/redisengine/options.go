package redisengine

import (
	"errors"
)

var ErrNilClient = errors.New("redis client must not be nil")
var ErrEmptyKeyPrefix = errors.New("key prefix must not be empty")

// Logger interface for skipped records and operation summaries.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithKeyPrefix sets the prefix of both list keys.
func WithKeyPrefix(prefix string) Option {
	return func(e *Engine) error {
		if prefix == "" {
			return ErrEmptyKeyPrefix
		}

		e.keyPrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Engine.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}
