// Package logging wraps log/slog with the level handling used across projsim.
//
// The level comes from the PROJSIM_LOG_LEVEL environment variable unless a
// command sets it explicitly. Valid levels: DEBUG, INFO, WARN, ERROR.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel is the environment variable consulted by LevelFromEnv.
const EnvLevel = "PROJSIM_LOG_LEVEL"

// Logger wraps slog.Logger so packages share one handler configuration.
type Logger struct {
	*slog.Logger
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// NewFromEnv creates a logger on stderr with the level from PROJSIM_LOG_LEVEL.
func NewFromEnv() *Logger {
	return New(os.Stderr, LevelFromEnv())
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError+1)
}

// With returns a logger carrying the given attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// LevelFromEnv reads PROJSIM_LOG_LEVEL, defaulting to INFO.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLevel))
}

// ParseLevel maps a level name to a slog level. Unknown names give INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
