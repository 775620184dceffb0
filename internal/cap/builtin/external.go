package builtin

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/marcelocantos/cotsh/internal/cap"
)

// ExecLauncher runs external programs with os/exec.
type ExecLauncher struct{}

var _ cap.Launcher = ExecLauncher{}

// Launch runs req.Path to completion with the given stdio and working
// directory. A non-zero exit is returned as *cap.StatusError so callers can
// propagate the code without printing anything; other errors, such as a
// file that is not executable, are returned as-is.
func (ExecLauncher) Launch(ctx context.Context, req cap.LaunchRequest) error {
	cmd := exec.CommandContext(ctx, req.Path, req.Args...)
	if req.Name != "" {
		cmd.Args[0] = req.Name
	}
	cmd.Dir = req.Dir
	cmd.Stdin = req.Stdin
	cmd.Stdout = req.Stdout
	if req.Stderr != nil {
		cmd.Stderr = req.Stderr
	} else {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &cap.StatusError{Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
