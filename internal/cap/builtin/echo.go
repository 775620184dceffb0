package builtin

import (
	"context"
	"io"
	"strings"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

// Echo prints its arguments. Leading -e interprets backslash escapes and
// -n drops the final newline; the two may be combined (-en). With a
// redirection each text argument becomes one line of the target file.
type Echo struct{}

var (
	_ cap.Capability = (*Echo)(nil)
	_ cap.ArgTierer  = (*Echo)(nil)
)

func (e *Echo) Name() string        { return "echo" }
func (e *Echo) Description() string { return "print arguments, optionally into a file" }
func (e *Echo) Tier() cap.Tier      { return cap.TierRead }

// TierFor requires the write tier when output is redirected.
func (e *Echo) TierFor(args []token.Token) cap.Tier {
	for _, a := range args {
		if a.IsRedirect() {
			return cap.TierWrite
		}
	}
	return cap.TierRead
}

func (e *Echo) Validate(args []token.Token) error {
	_, _, err := splitRedirect(args)
	return err
}

type echoFlags struct {
	interpret bool
	noNewline bool
}

// parseEchoFlags consumes leading flag tokens made only of e and n.
func parseEchoFlags(args []token.Token) (echoFlags, []token.Token) {
	var f echoFlags
	for len(args) > 0 {
		a := args[0]
		if a.Kind != token.Flag || len(a.Raw) < 2 || strings.Trim(a.Raw[1:], "en") != "" {
			break
		}
		for _, c := range a.Raw[1:] {
			switch c {
			case 'e':
				f.interpret = true
			case 'n':
				f.noNewline = true
			}
		}
		args = args[1:]
	}
	return f, args
}

func (e *Echo) Run(_ context.Context, env *cap.Env, args []token.Token) error {
	flags, args := parseEchoFlags(args)
	text, redir, err := splitRedirect(args)
	if err != nil {
		return err
	}

	vals := make([]string, len(text))
	for i, t := range text {
		if flags.interpret {
			vals[i] = t.Interpret()
		} else {
			vals[i] = t.Value()
		}
	}

	if redir == nil {
		out := strings.Join(vals, " ")
		if !flags.noNewline {
			out += "\n"
		}
		_, err := io.WriteString(env.Stdout, out)
		return err
	}

	f, err := openTarget(env, redir)
	if err != nil {
		return err
	}
	defer f.Close()
	var b strings.Builder
	for i, v := range vals {
		b.WriteString(v)
		if i < len(vals)-1 || !flags.noNewline {
			b.WriteByte('\n')
		}
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return shellerr.Errorf(shellerr.ErrIO, "write %s: %v", f.Name(), err)
	}
	return f.Close()
}
