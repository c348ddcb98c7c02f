package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger writing human-readable output to stderr. The
// level defaults to info and can be overridden with LOG_LEVEL.
func New(service string) zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
