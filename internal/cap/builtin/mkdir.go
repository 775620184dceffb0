package builtin

import (
	"context"
	"os"
	"path/filepath"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

type Mkdir struct{}

var _ cap.Capability = (*Mkdir)(nil)

func (m *Mkdir) Name() string        { return "mkdir" }
func (m *Mkdir) Description() string { return "create a directory" }
func (m *Mkdir) Tier() cap.Tier      { return cap.TierWrite }

func (m *Mkdir) Validate(args []token.Token) error {
	switch {
	case len(args) == 0:
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "missing operand")
	case len(args) > 1:
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
	return nil
}

func (m *Mkdir) Run(_ context.Context, env *cap.Env, args []token.Token) error {
	if err := m.Validate(args); err != nil {
		return err
	}
	arg := args[0].Value()
	parent, name, err := env.Resolver.Split(env.Dir.Path(), arg)
	if err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "cannot create directory '%s': invalid name", arg)
	}

	exists, err := env.Resolver.Contains(parent, name)
	if err != nil {
		return err
	}
	if exists {
		return shellerr.Errorf(shellerr.ErrInvalidArgument, "cannot create directory '%s': File exists", arg)
	}
	if err := os.Mkdir(filepath.Join(parent, name), 0755); err != nil {
		return shellerr.Errorf(shellerr.ErrIO, "cannot create directory '%s': %v", arg, err)
	}
	return nil
}
