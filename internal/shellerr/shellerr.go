// Package shellerr defines the error kinds shared by the interpreter's
// components. Callers wrap them with context and test with errors.Is.
package shellerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a wrong argument count or a missing
	// required argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPathNotFound reports a path segment that does not exist under the
	// directory walked so far.
	ErrPathNotFound = errors.New("no such file or directory")

	// ErrIO reports a directory-listing or file-write failure.
	ErrIO = errors.New("i/o failure")

	// ErrCommandNotFound reports a name that matched no builtin and no
	// entry on the search path.
	ErrCommandNotFound = errors.New("command not found")

	// ErrInvalidExitCode reports an exit argument that is not all digits.
	ErrInvalidExitCode = errors.New("invalid exit code")
)

// Error is a user-facing message tagged with one of the kinds above. Its
// text is the message alone; the kind is only visible to errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf formats a message tagged with kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
