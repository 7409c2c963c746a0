// Package log builds the slog loggers used across the launcher.
//
// Loggers are injected, not global: the orchestrator and prober take one in
// their constructors, and tests capture output with NewWithWriter or silence
// it with NewNop.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Config selects handler behaviour.
type Config struct {
	Level slog.Level
	JSON  bool
}

// New returns a logger writing to stderr.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
