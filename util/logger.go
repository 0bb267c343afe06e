package util

import (
	"io"
	"log/slog"
)

// NewLogger creates a structured logger writing to w. When w is a terminal a TextHandler is
// used for human-readable output, otherwise a JSONHandler so that piped output stays machine
// parseable.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}

	return slog.New(handler)
}

// NopLogger returns a logger which discards everything
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
