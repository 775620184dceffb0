package builtin

import (
	"context"
	"regexp"
	"strconv"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/shellerr"
	"github.com/marcelocantos/cotsh/internal/token"
)

var exitCodePattern = regexp.MustCompile(`^\d+$`)

// Exit asks the shell to terminate. It never exits the process itself; it
// returns *cap.ExitError and the caller decides.
type Exit struct{}

var _ cap.Capability = (*Exit)(nil)

func (e *Exit) Name() string        { return "exit" }
func (e *Exit) Description() string { return "exit the shell" }
func (e *Exit) Tier() cap.Tier      { return cap.TierRead }

func (e *Exit) Validate(args []token.Token) error {
	_, err := exitCode(args)
	return err
}

func (e *Exit) Run(_ context.Context, _ *cap.Env, args []token.Token) error {
	code, err := exitCode(args)
	if err != nil {
		return err
	}
	return &cap.ExitError{Code: code}
}

func exitCode(args []token.Token) (int, error) {
	switch len(args) {
	case 0:
		return 0, nil
	case 1:
	default:
		return 0, shellerr.Errorf(shellerr.ErrInvalidArgument, "too many arguments")
	}
	s := args[0].Value()
	if !exitCodePattern.MatchString(s) {
		return 0, shellerr.Errorf(shellerr.ErrInvalidExitCode, "%s: numeric argument required", s)
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, shellerr.Errorf(shellerr.ErrInvalidExitCode, "%s: out of range", s)
	}
	return code, nil
}
