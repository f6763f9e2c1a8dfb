package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps debug, info, warn and error (case-insensitive) to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logLevel %q is unknown", level)
	}

	return l, nil
}

// NewLogger creates a logger writing to stderr, so it never mixes with the menu on stdout.
func NewLogger(cfg FileConfig) (*slog.Logger, error) {
	return NewLoggerTo(os.Stderr, cfg)
}

// NewLoggerTo creates a logger writing to w with the level and format from cfg.
func NewLoggerTo(w io.Writer, cfg FileConfig) (*slog.Logger, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case LogFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logFormat %q is unknown", cfg.LogFormat)
	}
}
