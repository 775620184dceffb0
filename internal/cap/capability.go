// Package cap defines the shell's command capabilities: the builtin table,
// the capability interface each builtin implements, and the registry that
// classifies a command line and gates it by safety tier.
package cap

import (
	"context"
	"fmt"
	"io"

	"github.com/marcelocantos/cotsh/internal/cwd"
	"github.com/marcelocantos/cotsh/internal/display"
	"github.com/marcelocantos/cotsh/internal/token"
	"github.com/marcelocantos/cotsh/internal/walk"
)

// Tier represents the safety level of a capability.
type Tier int

const (
	TierRead  Tier = iota // inspects state only (pwd, ls, type)
	TierWrite             // creates or modifies files (mkdir, echo >)
	TierExec              // launches external programs
)

func (t Tier) String() string {
	switch t {
	case TierRead:
		return "read"
	case TierWrite:
		return "write"
	case TierExec:
		return "exec"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "read":
		return TierRead, nil
	case "write":
		return TierWrite, nil
	case "exec":
		return TierExec, nil
	default:
		return 0, fmt.Errorf("unknown tier: %q", s)
	}
}

// Capability is the interface every builtin implements.
type Capability interface {
	// Name returns the builtin's command name.
	Name() string

	// Description returns a one-line summary for help output.
	Description() string

	// Tier returns the safety classification.
	Tier() Tier

	// Validate checks args before execution. Called before Run.
	Validate(args []token.Token) error

	// Run executes the builtin. It is called with the working directory
	// locked; env.Dir is only valid until Run returns.
	Run(ctx context.Context, env *Env, args []token.Token) error
}

// ArgTierer is implemented by capabilities whose tier depends on their
// arguments.
type ArgTierer interface {
	TierFor(args []token.Token) Tier
}

// RequiredTier returns the tier c needs to run with args.
func RequiredTier(c Capability, args []token.Token) Tier {
	if at, ok := c.(ArgTierer); ok {
		return at.TierFor(args)
	}
	return c.Tier()
}

// Display renders directory listings and clears the screen.
type Display interface {
	List(w io.Writer, dir string, opts display.Options) error
	Clear(w io.Writer) error
}

// LaunchRequest describes one external process.
type LaunchRequest struct {
	Path   string
	Name   string // argv[0]; defaults to Path
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launcher spawns an external program and waits for it.
type Launcher interface {
	Launch(ctx context.Context, req LaunchRequest) error
}

// Env is everything a builtin can reach while it runs.
type Env struct {
	Dir      *cwd.Tx
	Resolver *walk.Resolver
	Registry *Registry
	Display  Display
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// ExitError asks the shell to terminate with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// StatusError represents an external program that exited with a non-zero
// status. The program's own stderr is its message, so the shell prints
// nothing for it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
