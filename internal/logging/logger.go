// Package logging builds the process-wide structured logger. Output is JSON
// on stdout; the level comes from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON slog logger at the given level. An unrecognized level
// string falls back to info rather than failing startup.
func New(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// Discard returns a logger that drops everything, for tests that wire
// components needing a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
