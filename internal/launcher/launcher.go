// Package launcher hands the process over to the wrapped RAG server.
//
// The launch itself sits behind the Launcher interface so the orchestrator
// can be tested against a recording fake instead of actually starting the
// third-party server. Two real implementations exist: ExecLauncher replaces
// the current process (the container entrypoint case) and SpawnLauncher
// starts a child and waits (useful under a debugger or on non-unix hosts).
package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/NOGUCHILin/sonshi-ragflow/internal/config"
)

// Spec is everything needed to start the server process.
type Spec struct {
	Path string   // binary or script to run
	Args []string // argv[1:]
	Env  []string // full child environment, KEY=VALUE
	Dir  string   // working directory
}

// Launcher starts the server process described by spec. Exec-style
// implementations never return on success.
type Launcher interface {
	Launch(ctx context.Context, spec Spec) error
}

// BuildSpec derives the launch spec from the resolved config. baseEnv is the
// environment to inherit (normally os.Environ()); PORT, TZ and WORKDIR are
// set on top of it so the child always sees the resolved values.
func BuildSpec(cfg config.Config, baseEnv []string) Spec {
	port := strconv.Itoa(cfg.Port)
	env := mergeEnv(baseEnv,
		"PORT="+port,
		"TZ="+cfg.Timezone,
		"WORKDIR="+cfg.AppRoot,
	)

	if cfg.Variant == config.VariantSimple {
		return Spec{
			Path: "python3",
			Args: []string{cfg.AppRoot + "/simple-rag-server.py", "--host", cfg.Host, "--port", port},
			Env:  env,
			Dir:  cfg.AppRoot,
		}
	}
	// RAGFlow's own entrypoint script picks the port up from PORT.
	return Spec{
		Path: cfg.AppRoot + "/entrypoint.sh",
		Env:  env,
		Dir:  cfg.AppRoot,
	}
}

// SpawnLauncher runs the server as a child process and waits for it,
// inheriting stdio. The child's exit status is returned as an error.
type SpawnLauncher struct{}

// Launch implements Launcher.
func (SpawnLauncher) Launch(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Env = spec.Env
	cmd.Dir = spec.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// mergeEnv returns base with the given KEY=VALUE overrides applied,
// replacing any existing entry for the same key.
func mergeEnv(base []string, overrides ...string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if envHasKey(overrides, key) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, overrides...)
}

func envHasKey(env []string, key string) bool {
	for _, kv := range env {
		if k, _, _ := strings.Cut(kv, "="); k == key {
			return true
		}
	}
	return false
}
