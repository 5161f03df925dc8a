package cli

import (
	"io"
	"log/slog"

	"github.com/dusted-go/logging/prettylog"
)

// logLevel keeps stderr quiet on a successful run: only release problems
// (warn) and worse are printed. Runner state transitions are debug.
const logLevel = slog.LevelWarn

// newLogger returns the diagnostic logger, writing human-readable lines to
// w.
func newLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: logLevel,
	}

	return slog.New(prettylog.New(&opts, prettylog.WithDestinationWriter(w)))
}
