// Sonshid — startup orchestrator for the 孫子の兵法 RAG server on Railway
//
// Usage:
//
//	sonshid launch
//	sonshid launch --variant simple --port 4000
//	sonshid healthcheck
//	sonshid inspect
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/NOGUCHILin/sonshi-ragflow/internal/config"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/dataset"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/launcher"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/log"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/orchestrator"
	"github.com/NOGUCHILin/sonshi-ragflow/internal/probe"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const banner = `
  ┌─────────────────────────────────────┐
  │  孫子の兵法 RAG  ·  sonshi-ragflow  │
  └─────────────────────────────────────┘
`

func main() {
	var (
		verbose bool
		spawn   bool
	)

	root := &cobra.Command{
		Use:           "sonshid",
		Short:         "Sonshid — launcher and health probe for the Sunzi RAG server",
		Long:          banner,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	launch := &cobra.Command{
		Use:   "launch",
		Short: "Prepare directories and start the RAG server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Flags(), newLogger(verbose), spawn)
		},
	}
	addConfigFlags(launch.Flags())
	launch.Flags().BoolVar(&spawn, "spawn", false,
		"Run the server as a child process instead of replacing this one")

	health := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the running server's health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealthcheck(cmd.Flags(), newLogger(verbose))
		},
	}
	addConfigFlags(health.Flags())

	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved configuration and dataset report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Flags())
		},
	}
	addConfigFlags(inspect.Flags())

	root.AddCommand(launch, health, inspect)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

// addConfigFlags registers the shared configuration flags. Defaults are left
// empty so environment variables and the config file keep their priority.
func addConfigFlags(f *pflag.FlagSet) {
	f.String("variant", "", `Build variant: "ragflow" or "simple" (env RAG_VARIANT)`)
	f.StringP("port", "p", "", "Listening port for the server (env PORT; empty = variant default)")
	f.String("host", "", "Bind address (default 0.0.0.0)")
	f.String("app-root", "", "Application root directory (default /app)")
	f.String("data-dir", "", "Corpus directory (default <app-root>/data/sonshi)")
	f.String("log-dir", "", "Log directory (default <app-root>/logs)")
	f.String("timezone", "", "TZ for the server process (default Asia/Tokyo)")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}

func runLaunch(flags *pflag.FlagSet, logger *slog.Logger, spawn bool) error {
	fmt.Print(banner)

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	var l launcher.Launcher = launcher.ExecLauncher{}
	if spawn {
		l = launcher.SpawnLauncher{}
	}
	return orchestrator.New(cfg, l, logger).Run(context.Background())
}

func runHealthcheck(flags *pflag.FlagSet, logger *slog.Logger) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	return probe.New(cfg, logger).Check(context.Background())
}

func runInspect(flags *pflag.FlagSet) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	rep, err := dataset.Inspect(cfg.DataDir)
	if err != nil {
		return err
	}

	out := struct {
		Config  config.Config  `json:"config"`
		Dataset dataset.Report `json:"dataset"`
	}{cfg, rep}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
