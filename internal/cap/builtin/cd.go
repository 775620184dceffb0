package builtin

import (
	"context"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

// Cd is the only builtin that replaces the working directory.
type Cd struct{}

var _ cap.Capability = (*Cd)(nil)

func (c *Cd) Name() string        { return "cd" }
func (c *Cd) Description() string { return "change the working directory" }
func (c *Cd) Tier() cap.Tier      { return cap.TierRead }

func (c *Cd) Validate(args []token.Token) error {
	if len(args) > 1 {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
	return nil
}

func (c *Cd) Run(_ context.Context, env *cap.Env, args []token.Token) error {
	dir, err := env.Resolver.Resolve(env.Dir.Path(), token.Values(args))
	if err != nil {
		return err
	}
	if dir == env.Dir.Path() {
		return nil
	}
	if err := env.Dir.Set(dir); err != nil {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "not a directory: %s", args[0].Value())
	}
	return nil
}
