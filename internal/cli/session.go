// Package cli wires configuration, the interpreter and the terminal
// together for each cotsh entry point.
package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/marcelocantos/cotsh/internal/audit"
	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/cap/builtin"
	"github.com/marcelocantos/cotsh/internal/config"
	"github.com/marcelocantos/cotsh/internal/cwd"
	"github.com/marcelocantos/cotsh/internal/display"
	"github.com/marcelocantos/cotsh/internal/shell"
	"github.com/marcelocantos/cotsh/internal/walk"
)

// Options carries what every entry point needs to build a session.
type Options struct {
	Config *config.Config
	// Dir overrides the configured start directory.
	Dir     string
	NoColor bool
	Log     *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = config.DefaultConfig()
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Session is a configured interpreter plus the renderer it prints with.
type Session struct {
	Shell    *shell.Shell
	Renderer *display.Renderer
	Config   *config.Config
	history  *audit.Logger
}

// NewSession builds an interpreter from opts.
func NewSession(opts Options) (*Session, error) {
	opts.defaults()
	cfg := opts.Config

	start := opts.Dir
	if start == "" {
		start = cfg.StartDir
	}
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		start = wd
	}
	dir, err := cwd.New(start)
	if err != nil {
		return nil, fmt.Errorf("start directory: %w", err)
	}

	reg := cap.NewRegistry()
	builtin.RegisterAll(reg)
	cfg.ApplyTiers(reg)
	cfg.ApplySearchPath(reg)

	color := !opts.NoColor && display.ColorEnabled(cfg.Color, opts.Stdout)
	renderer := display.New(display.WithColor(color))

	shellOpts := []shell.Option{
		shell.WithResolver(walk.New(walk.WithLogger(opts.Log.Named("walk")))),
		shell.WithDisplay(renderer),
		shell.WithLauncher(builtin.ExecLauncher{}),
		shell.WithLogger(opts.Log.Named("shell")),
		shell.WithIO(opts.Stdin, opts.Stdout, opts.Stderr),
	}

	sess := &Session{Renderer: renderer, Config: cfg}
	if cfg.Audit.Enabled {
		logger, err := audit.NewLogger(cfg.Audit.Path)
		if err != nil {
			// Continue without a history log.
			opts.Log.Warn("history log unavailable", zap.Error(err))
		} else {
			sess.history = logger
			shellOpts = append(shellOpts, shell.WithHistory(logger))
		}
	}
	sess.Shell = shell.New(dir, reg, shellOpts...)

	opts.Log.Debug("session ready",
		zap.String("dir", start),
		zap.Strings("search_path", reg.SearchPath()),
		zap.Bool("color", color),
		zap.Bool("history", sess.history != nil))
	return sess, nil
}

// Prompt returns the styled prompt for the current directory.
func (s *Session) Prompt(w io.Writer) string {
	return s.Renderer.Prompt(w, s.Config.PromptFor(s.Shell.Dir().Path()))
}
