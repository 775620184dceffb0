package builtin

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/display"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

type Ls struct{}

var _ cap.Capability = (*Ls)(nil)

func (l *Ls) Name() string        { return "ls" }
func (l *Ls) Description() string { return "list directory contents" }
func (l *Ls) Tier() cap.Tier      { return cap.TierRead }

func (l *Ls) Validate(args []token.Token) error {
	_, _, err := parseLsArgs(args)
	return err
}

// parseLsArgs splits flags (which may be combined, as in -lF) from the
// optional directory argument.
func parseLsArgs(args []token.Token) (display.Options, []string, error) {
	var (
		opts  display.Options
		paths []string
	)
	for _, a := range args {
		if a.Kind != token.Flag {
			paths = append(paths, a.Value())
			continue
		}
		if a.Raw == "-" {
			return opts, nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "invalid option -- '-'")
		}
		for _, c := range a.Raw[1:] {
			switch c {
			case 'l':
				opts.Long = true
			case '1':
				opts.OnePerLine = true
			case 'F':
				opts.Classify = true
			case 'R':
				opts.Recursive = true
			case 'x':
				opts.Across = true
			default:
				return opts, nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "invalid option -- '%c'", c)
			}
		}
	}
	if len(paths) > 1 {
		return opts, nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
	return opts, paths, nil
}

func (l *Ls) Run(_ context.Context, env *cap.Env, args []token.Token) error {
	opts, paths, err := parseLsArgs(args)
	if err != nil {
		return err
	}
	target, err := env.Resolver.Resolve(env.Dir.Path(), paths)
	if err != nil {
		return err
	}
	shown := "."
	if len(paths) == 1 {
		shown = paths[0]
	}
	info, err := os.Stat(target)
	if err != nil {
		return shellerr.Errorf(shellerr.ErrIO, "cannot access %s: %v", shown, err)
	}
	if !info.IsDir() {
		_, err := fmt.Fprintln(env.Stdout, shown)
		return err
	}
	return env.Display.List(env.Stdout, target, opts)
}
