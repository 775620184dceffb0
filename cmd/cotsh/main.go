package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcelocantos/cotsh/internal/cli"
	"github.com/marcelocantos/cotsh/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

type flags struct {
	config  string
	dir     string
	command string
	debug   bool
	noColor bool
}

func (f *flags) options() (cli.Options, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.config != "" {
		cfg, err = config.LoadFrom(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cli.Options{}, err
	}

	log := zap.NewNop()
	if f.debug {
		if log, err = zap.NewDevelopment(); err != nil {
			return cli.Options{}, fmt.Errorf("logger: %w", err)
		}
	}
	log.Debug("config loaded",
		zap.String("path", f.config),
		zap.String("color", cfg.Color),
		zap.Bool("audit", cfg.Audit.Enabled))
	return cli.Options{
		Config:  cfg,
		Dir:     f.dir,
		NoColor: f.noColor,
		Log:     log,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

func run() int {
	var (
		f    flags
		code int
	)

	root := &cobra.Command{
		Use:           "cotsh [script]",
		Short:         "A small line-oriented shell",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			defer opts.Log.Sync() //nolint:errcheck
			sess, err := cli.NewSession(opts)
			if err != nil {
				return err
			}

			switch {
			case cmd.Flags().Changed("command"):
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				code = cli.RunCommand(ctx, sess, f.command)
			case len(args) == 1:
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				code = cli.RunScript(ctx, sess, args[0], os.Stderr)
			default:
				code = cli.RunInteractive(cmd.Context(), sess, os.Stdin, os.Stdout, os.Stderr)
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (default ~/.config/cotsh/config.yaml)")
	pf.StringVar(&f.dir, "dir", "", "start directory")
	pf.BoolVar(&f.debug, "debug", false, "log interpreter internals to stderr")
	pf.BoolVar(&f.noColor, "no-color", false, "disable coloured output")
	root.Flags().StringVarP(&f.command, "command", "c", "", "run one line and exit")

	var tailN int
	auditCmd := &cobra.Command{
		Use:       "audit verify|tail",
		Short:     "Inspect the hash-chained history log",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"verify", "tail"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			code = cli.RunAudit(os.Stdout, opts.Config.Audit.Path, args[0], tailN)
			return nil
		},
	}
	auditCmd.Flags().IntVarP(&tailN, "lines", "n", 20, "entries to show with tail")

	var tierFilter string
	builtinsCmd := &cobra.Command{
		Use:   "builtins",
		Short: "List the builtin commands and their tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code = cli.RunBuiltins(os.Stdout, tierFilter)
			return nil
		},
	}
	builtinsCmd.Flags().StringVar(&tierFilter, "tier", "", "only show builtins of this tier (read, write, exec)")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the interpreter as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			defer opts.Log.Sync() //nolint:errcheck
			code = cli.RunMCP(opts, version)
			return nil
		},
	}

	root.AddCommand(auditCmd, builtinsCmd, mcpCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cotsh: %v\n", err)
		return 2
	}
	return code
}
