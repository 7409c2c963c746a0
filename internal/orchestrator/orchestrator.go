// Package orchestrator runs the startup sequence: prepare directories,
// report on the bundled corpus, then hand the process to the server.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/NOGUCHILin/sonshi-ragflow/internal/config"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/dataset"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/launcher"
)

// Orchestrator wires config, corpus checks and the launcher together.
type Orchestrator struct {
	cfg      config.Config
	launcher launcher.Launcher
	log      *slog.Logger
}

// New returns an Orchestrator. logger must not be nil.
func New(cfg config.Config, l launcher.Launcher, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, launcher: l, log: logger}
}

// Run executes the startup sequence and hands off to the launcher. Every
// setup step is fail-fast: the first error aborts before the server starts.
// With an exec-style launcher Run never returns on success.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := os.MkdirAll(o.cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	rep, err := dataset.Inspect(o.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("inspect dataset: %w", err)
	}
	if rep.Empty() {
		o.log.Warn("dataset missing or empty, server will start without a corpus",
			"path", o.cfg.DataDir)
		if _, err := dataset.Ensure(o.cfg.DataDir); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	} else {
		o.log.Info("dataset ready",
			"path", rep.Path, "files", len(rep.Entries), "bytes", rep.TotalBytes)
		for _, e := range rep.Entries {
			o.log.Info("loaded", "file", e.Name, "title", e.Title, "size", e.Size)
		}
	}

	spec := launcher.BuildSpec(o.cfg, os.Environ())
	o.log.Info("starting server",
		"variant", o.cfg.Variant, "host", o.cfg.Host, "port", o.cfg.Port, "cmd", spec.Path)
	return o.launcher.Launch(ctx, spec)
}
