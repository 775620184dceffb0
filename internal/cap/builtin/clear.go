package builtin

import (
	"context"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/token"
)

type Clear struct{}

var _ cap.Capability = (*Clear)(nil)

func (c *Clear) Name() string                      { return "clear" }
func (c *Clear) Description() string               { return "clear the terminal screen" }
func (c *Clear) Tier() cap.Tier                    { return cap.TierRead }
func (c *Clear) Validate(args []token.Token) error { return nil }

func (c *Clear) Run(_ context.Context, env *cap.Env, _ []token.Token) error {
	return env.Display.Clear(env.Stdout)
}
