package builtin

import "github.com/marcelocantos/cotsh/internal/cap"

// RegisterAll adds all in-process builtins to the registry. The cotsh
// self-invocation entry is handled by the dispatcher and has no capability.
func RegisterAll(r *cap.Registry) {
	r.Register(&Cd{})
	r.Register(&Clear{})
	r.Register(&Echo{})
	r.Register(&Exit{})
	r.Register(&Ls{})
	r.Register(&Mkdir{})
	r.Register(&Pwd{})
	r.Register(&Type{})
	r.Register(&Type{name: "which"})
}
