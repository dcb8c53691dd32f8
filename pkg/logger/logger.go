package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line
const ServiceName = "inkwell-api"

// New creates a new zerolog logger configured from LOG_LEVEL, LOG_FORMAT and ENV
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), pretty())
}

// NewWithWriter builds a logger writing to w at the named level
func NewWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if console {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(ParseLevel(level)).
			With().
			Timestamp().
			Caller().
			Str("service", ServiceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// pretty output in development or when LOG_FORMAT=pretty
func pretty() bool {
	return os.Getenv("ENV") == "development" || os.Getenv("LOG_FORMAT") == "pretty"
}
