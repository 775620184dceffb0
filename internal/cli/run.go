package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/display"
)

// dispatchLine runs one line with SIGINT bound to the line's context, so
// Ctrl-C stops a running program without ending the shell. It reports
// whether the shell should exit, and with which code.
func dispatchLine(ctx context.Context, sess *Session, line string) (int, bool) {
	lineCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return cap.IsExit(sess.Shell.Dispatch(lineCtx, line))
}

// RunInteractive reads lines until exit or end of input. A terminal gets
// the line editor with history; anything else is read line by line.
func RunInteractive(ctx context.Context, sess *Session, stdin io.Reader, stdout, stderr io.Writer) int {
	if display.IsTerminal(stdin) && display.IsTerminal(stdout) {
		code, err := runEditor(ctx, sess, stdout)
		if err == nil {
			return code
		}
		fmt.Fprintf(stderr, "cotsh: line editor unavailable: %v\n", err)
	}
	return runLines(ctx, sess, stdin, stderr)
}

func runEditor(ctx context.Context, sess *Session, stdout io.Writer) (int, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(cap.Builtins()))
	for _, e := range cap.Builtins() {
		items = append(items, readline.PcItem(e.Name))
	}

	cfg := sess.Config
	historyFile := ""
	if cfg.History.Limit > 0 && cfg.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0700); err == nil {
			historyFile = cfg.History.Path
		}
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sess.Prompt(stdout),
		HistoryFile:     historyFile,
		HistoryLimit:    cfg.History.Limit,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return 0, err
	}
	defer rl.Close()

	for {
		rl.SetPrompt(sess.Prompt(stdout))
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return 0, nil
		}
		if code, exit := dispatchLine(ctx, sess, line); exit {
			return code, nil
		}
		if ctx.Err() != nil {
			return 130, nil
		}
	}
}

func runLines(ctx context.Context, sess *Session, stdin io.Reader, stderr io.Writer) int {
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if code, exit := dispatchLine(ctx, sess, sc.Text()); exit {
			return code
		}
		if ctx.Err() != nil {
			return 130
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stderr, "cotsh: read input: %v\n", err)
		return 1
	}
	return 0
}

// RunScript runs the file at path through the interpreter.
func RunScript(ctx context.Context, sess *Session, path string, stderr io.Writer) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(stderr, "cotsh: %v\n", err)
		return 1
	}
	err = sess.Shell.RunFile(ctx, abs)
	if code, ok := cap.IsExit(err); ok {
		return code
	}
	if err != nil {
		sess.Renderer.Error(stderr, "cotsh", err.Error())
		return 1
	}
	return 0
}

// RunCommand runs a single line, as given to cotsh -c.
func RunCommand(ctx context.Context, sess *Session, line string) int {
	err := sess.Shell.Dispatch(ctx, line)
	if code, ok := cap.IsExit(err); ok {
		return code
	}
	var status *cap.StatusError
	if errors.As(err, &status) {
		return status.Code
	}
	if err != nil {
		return 1
	}
	return 0
}
