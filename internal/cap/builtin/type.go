package builtin

import (
	"context"
	"fmt"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

// Type reports how each name would be interpreted. Which is the same
// builtin under another name.
type Type struct {
	name string
}

var _ cap.Capability = (*Type)(nil)

func (t *Type) Name() string {
	if t.name == "" {
		return "type"
	}
	return t.name
}

func (t *Type) Description() string { return "describe how a command name resolves" }
func (t *Type) Tier() cap.Tier      { return cap.TierRead }

func (t *Type) Validate(args []token.Token) error {
	if len(args) == 0 {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "missing argument")
	}
	return nil
}

func (t *Type) Run(_ context.Context, env *cap.Env, args []token.Token) error {
	for _, a := range args {
		name := a.Value()
		if _, ok := cap.LookupBuiltin(name); ok {
			fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		} else if p, ok := env.Registry.LookPath(name); ok {
			fmt.Fprintf(env.Stdout, "%s is %s\n", name, p)
		} else {
			fmt.Fprintf(env.Stdout, "%s not found\n", name)
		}
	}
	return nil
}
