package builtin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

// redirect is a parsed > or >> clause.
type redirect struct {
	append bool
	target string
}

// splitRedirect separates the text tokens of args from an optional
// redirection. The token after > or >> is the target; anything after the
// target is text again. A missing target or a second redirection is an
// invalid argument.
func splitRedirect(args []token.Token) ([]token.Token, *redirect, error) {
	var (
		text  []token.Token
		redir *redirect
	)
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !a.IsRedirect() {
			text = append(text, a)
			continue
		}
		if redir != nil {
			return nil, nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "only one redirection is allowed")
		}
		if i+1 == len(args) || args[i+1].IsRedirect() {
			return nil, nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "missing redirection target after %s", a.Raw)
		}
		i++
		redir = &redirect{append: a.Kind == token.AppendRedirect, target: args[i].Value()}
	}
	return text, redir, nil
}

// openTarget resolves the redirection target against the working directory
// and opens it for writing. Every segment but the last is walked; the last
// names the file.
func openTarget(env *cap.Env, r *redirect) (*os.File, error) {
	dir, name, err := env.Resolver.Split(env.Dir.Path(), r.target)
	if err != nil {
		return nil, fmt.Errorf("redirection: %w", err)
	}
	if name == "" {
		return nil, shellerr.Errorf(shellerr.ErrInvalidArgument, "redirection: missing file name in %s", r.target)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if r.append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(filepath.Join(dir, name), flags, 0644)
	if err != nil {
		return nil, shellerr.Errorf(shellerr.ErrIO, "redirection: %v", err)
	}
	return f, nil
}
