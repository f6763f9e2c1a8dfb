// Package testutil provides helpers shared by the tests of several packages.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandler is a slog.Handler implementation that captures log records for testing.
type LogHandler struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandler creates a new LogHandler.
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLogHandler(logToStdout bool) *LogHandler {
	return &LogHandler{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// NewLogger creates a *slog.Logger writing into a new LogHandler and returns both.
func NewLogger() (*slog.Logger, *LogHandler) {
	handler := NewLogHandler(false)

	return slog.New(handler), handler
}

// Handle implements slog.Handler interface.
func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record.Clone())

	if h.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler interface.
func (h *LogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler interface.
func (h *LogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler interface.
func (h *LogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of all captured log records.
func (h *LogHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	records := make([]slog.Record, len(h.records))
	copy(records, h.records)

	return records
}

// RecordsAtLevel returns the captured records with exactly this level.
func (h *LogHandler) RecordsAtLevel(level slog.Level) []slog.Record {
	matching := make([]slog.Record, 0)

	for _, record := range h.Records() {
		if record.Level == level {
			matching = append(matching, record)
		}
	}

	return matching
}

// HasMessage reports whether a record with this message was captured.
func (h *LogHandler) HasMessage(msg string) bool {
	for _, record := range h.Records() {
		if record.Message == msg {
			return true
		}
	}

	return false
}

// AttrValue returns the string value of the first attribute with this key in the record.
func AttrValue(record slog.Record, key string) (string, bool) {
	var value string
	var found bool

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value = attr.Value.String()
			found = true

			return false
		}

		return true
	})

	return value, found
}
