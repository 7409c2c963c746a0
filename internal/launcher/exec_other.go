//go:build !unix

package launcher

import "context"

// ExecLauncher degrades to spawn+wait where execve is unavailable.
type ExecLauncher struct{}

// Launch implements Launcher.
func (ExecLauncher) Launch(ctx context.Context, spec Spec) error {
	return SpawnLauncher{}.Launch(ctx, spec)
}
