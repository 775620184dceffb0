package builtin

import (
	"context"
	"fmt"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

type Pwd struct{}

var _ cap.Capability = (*Pwd)(nil)

func (p *Pwd) Name() string        { return "pwd" }
func (p *Pwd) Description() string { return "print the working directory" }
func (p *Pwd) Tier() cap.Tier      { return cap.TierRead }

func (p *Pwd) Validate(args []token.Token) error {
	if len(args) > 0 {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
	return nil
}

func (p *Pwd) Run(_ context.Context, env *cap.Env, _ []token.Token) error {
	_, err := fmt.Fprintln(env.Stdout, env.Dir.Path())
	return err
}
