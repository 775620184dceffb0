package pipeline

import (
	"context"

	"github.com/marcelocantos/cotsh/internal/cap"
)

// Runner dispatches one step. It must treat an empty line as a no-op.
type Runner func(ctx context.Context, line string) error

// ExecuteCommand runs the steps of cmd left to right, applying the operator
// between each pair: && runs the next step only after a success, || only
// after a failure, ; always. This is conditional execution, not a plain
// split on separators. It returns the error of the last step that ran. An
// exit request stops the remaining steps.
func ExecuteCommand(ctx context.Context, cmd *Command, run Runner) error {
	var lastErr error

	for i, step := range cmd.Steps {
		if i > 0 {
			switch cmd.Steps[i-1].Op {
			case OpAndThen:
				if lastErr != nil {
					continue
				}
			case OpOrElse:
				if lastErr == nil {
					continue
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = run(ctx, step.Line)
		if _, ok := cap.IsExit(lastErr); ok {
			return lastErr
		}
	}

	return lastErr
}
