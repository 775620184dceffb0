// Package shell dispatches input lines: it splits compound lines, evaluates
// bare arithmetic, classifies commands and runs builtins under the
// working-directory lock or launches external programs.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcelocantos/cotsh/internal/audit"
	"github.com/marcelocantos/cotsh/internal/calc"
	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/cwd"
	"github.com/marcelocantos/cotsh/internal/display"
	"github.com/marcelocantos/cotsh/internal/pipeline"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
	"github.com/marcelocantos/cotsh/internal/walk"
)

// maxScriptDepth bounds nested cotsh <file> invocations.
const maxScriptDepth = 16

// Shell is one interpreter session. It is not safe for concurrent Dispatch
// calls; the working directory it shares with builtins is.
type Shell struct {
	dir      *cwd.Dir
	reg      *cap.Registry
	resolver *walk.Resolver
	display  *display.Renderer
	launcher cap.Launcher
	history  *audit.Logger
	log      *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	depth int
}

// Option configures a Shell.
type Option func(*Shell)

// WithResolver replaces the path resolver.
func WithResolver(r *walk.Resolver) Option { return func(s *Shell) { s.resolver = r } }

// WithDisplay replaces the renderer used for listings and error lines.
func WithDisplay(d *display.Renderer) Option { return func(s *Shell) { s.display = d } }

// WithLauncher replaces the external program launcher.
func WithLauncher(l cap.Launcher) Option { return func(s *Shell) { s.launcher = l } }

// WithHistory records every dispatched line in l.
func WithHistory(l *audit.Logger) Option { return func(s *Shell) { s.history = l } }

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option { return func(s *Shell) { s.log = l } }

// WithIO sets the shell's standard streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *Shell) {
		s.stdin, s.stdout, s.stderr = stdin, stdout, stderr
	}
}

// New returns a Shell operating on dir with the builtins in reg. A
// launcher must be supplied with WithLauncher for external programs to run.
func New(dir *cwd.Dir, reg *cap.Registry, opts ...Option) *Shell {
	s := &Shell{
		dir:     dir,
		reg:     reg,
		display: display.New(),
		log:     zap.NewNop(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, o := range opts {
		o(s)
	}
	if s.resolver == nil {
		s.resolver = walk.New(walk.WithLogger(s.log))
	}
	return s
}

// Dir returns the shell's working directory.
func (s *Shell) Dir() *cwd.Dir { return s.dir }

// Dispatch runs one input line to completion. Errors are printed to the
// shell's stderr and also returned, so callers can act on *cap.ExitError;
// every other error has already been reported.
func (s *Shell) Dispatch(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if pipeline.IsComposite(line) {
		s.log.Debug("dispatch: compound line", zap.String("line", line))
		return pipeline.ExecuteCommand(ctx, pipeline.Parse(line), s.Dispatch)
	}

	start := time.Now()
	before := s.dir.Path()

	var (
		name = "cotsh"
		kind = "calc"
		tier = cap.TierRead
		err  error
	)
	if calc.IsExpression(line) {
		err = s.arithmetic(line)
	} else {
		cmd := s.reg.Classify(token.Tokenize(line), line)
		name, kind = cmd.Name, cmd.Kind.String()
		tier, err = s.execute(ctx, cmd)
	}

	elapsed := time.Since(start)
	s.log.Debug("dispatch",
		zap.String("line", line),
		zap.String("kind", kind),
		zap.Duration("elapsed", elapsed),
		zap.Error(err))
	s.record(line, kind, tier, before, elapsed, err)
	s.report(name, err)
	return err
}

func (s *Shell) arithmetic(line string) error {
	out, err := calc.Eval(line)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.stdout, out)
	return err
}

// execute runs a classified command and returns the tier it required.
func (s *Shell) execute(ctx context.Context, cmd cap.Command) (cap.Tier, error) {
	switch cmd.Kind {
	case cap.KindEmpty:
		return cap.TierRead, nil
	case cap.KindInvalid:
		return cap.TierRead, cap.NotFound(cmd.Name)
	case cap.KindExternal:
		return cap.TierExec, s.launch(ctx, cmd)
	case cap.KindSelfInvoke:
		return cap.TierRead, s.script(ctx, cmd)
	}

	c, err := s.reg.Lookup(cmd.Name)
	if err != nil {
		return cap.TierRead, err
	}
	tier := cap.RequiredTier(c, cmd.Args)
	if err := s.reg.CheckTier(tier); err != nil {
		return tier, err
	}
	if err := c.Validate(cmd.Args); err != nil {
		return tier, err
	}
	return tier, s.dir.Do(func(tx *cwd.Tx) error {
		env := &cap.Env{
			Dir:      tx,
			Resolver: s.resolver,
			Registry: s.reg,
			Display:  s.display,
			Stdin:    s.stdin,
			Stdout:   s.stdout,
			Stderr:   s.stderr,
		}
		return c.Run(ctx, env, cmd.Args)
	})
}

func (s *Shell) launch(ctx context.Context, cmd cap.Command) error {
	if err := s.reg.CheckTier(cap.TierExec); err != nil {
		return err
	}
	if s.launcher == nil {
		return shellerr.Errorf(shellerr.ErrCommandNotFound, "external programs are not available")
	}
	return s.launcher.Launch(ctx, cap.LaunchRequest{
		Path:   cmd.Path,
		Name:   cmd.Name,
		Args:   token.Values(cmd.Args),
		Dir:    s.dir.Path(),
		Stdin:  s.stdin,
		Stdout: s.stdout,
		Stderr: s.stderr,
	})
}

// script handles "cotsh <file>". It runs outside the directory lock since
// every line it dispatches takes the lock itself.
func (s *Shell) script(ctx context.Context, cmd cap.Command) error {
	if len(cmd.Args) != 1 {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "usage: cotsh <file>")
	}
	arg := cmd.Args[0].Value()
	dir, name, err := s.resolver.Split(s.dir.Path(), arg)
	if err != nil {
		return err
	}
	if name == "" {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "%s: not a file", arg)
	}
	return s.RunFile(ctx, filepath.Join(dir, name))
}

// RunFile dispatches each line of the file at path in order. Blank lines
// and lines starting with # are skipped. A failing line does not stop the
// script; an exit request does and is returned.
func (s *Shell) RunFile(ctx context.Context, path string) error {
	if s.depth >= maxScriptDepth {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "%s: scripts nested too deeply", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return shellerr.Errorf(shellerr.ErrPathNotFound, "no such file or directory: %s", path)
		}
		return shellerr.Errorf(shellerr.ErrIO, "cannot read %s: %v", path, err)
	}

	s.depth++
	defer func() { s.depth-- }()

	s.log.Debug("script: start", zap.String("path", path))
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Dispatch(ctx, line); err != nil {
			if _, ok := cap.IsExit(err); ok {
				return err
			}
		}
	}
	return nil
}

// report prints err as "name: message". Exit requests, child statuses and
// cancellation are silent.
func (s *Shell) report(name string, err error) {
	if err == nil {
		return
	}
	var (
		exit   *cap.ExitError
		status *cap.StatusError
	)
	if errors.As(err, &exit) || errors.As(err, &status) || errors.Is(err, context.Canceled) {
		return
	}
	s.display.Error(s.stderr, name, err.Error())
}

func (s *Shell) record(line, kind string, tier cap.Tier, dir string, elapsed time.Duration, err error) {
	if s.history == nil {
		return
	}
	rec := audit.Record{
		Line:     line,
		Kind:     kind,
		Tier:     tier.String(),
		Duration: elapsed,
		Cwd:      dir,
	}
	var status *cap.StatusError
	switch {
	case err == nil:
	case errors.As(err, &status):
		rec.Status = status.Code
	default:
		if _, ok := cap.IsExit(err); !ok {
			rec.Status = 1
			rec.Err = err
		}
	}
	if lerr := s.history.Log(rec); lerr != nil {
		s.log.Warn("history: write failed", zap.Error(lerr))
	}
}
