package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger with human-readable console output on stderr.
// The level is taken from RECORDER_LOG_LEVEL, defaulting to info.
func New() zerolog.Logger {
	return NewWithLevel(os.Getenv("RECORDER_LOG_LEVEL"))
}

// NewWithLevel creates a logger at the given level ("debug", "info", "warn", ...)
func NewWithLevel(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
