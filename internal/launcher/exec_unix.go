//go:build unix

package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// ExecLauncher replaces the current process with the server via execve, so
// the server receives signals directly from the platform's process manager
// and its exit code becomes the container's exit code.
type ExecLauncher struct{}

// Launch implements Launcher. On success it never returns.
func (ExecLauncher) Launch(_ context.Context, spec Spec) error {
	path, err := exec.LookPath(spec.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", spec.Path, err)
	}
	if spec.Dir != "" {
		if err := os.Chdir(spec.Dir); err != nil {
			return fmt.Errorf("chdir %s: %w", spec.Dir, err)
		}
	}
	argv := append([]string{spec.Path}, spec.Args...)
	if err := unix.Exec(path, argv, spec.Env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
