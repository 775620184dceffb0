package cap

import "fmt"

// Kind is the classification of a command line.
type Kind int

const (
	KindEmpty Kind = iota
	KindType
	KindWhich
	KindEcho
	KindExit
	KindClear
	KindPwd
	KindCd
	KindLs
	KindMkdir
	KindSelfInvoke
	KindExternal
	KindInvalid
)

// Flags describe what a builtin may do.
type Flags uint8

const (
	FlagBuiltin   Flags = 1 << iota // implemented in-process
	FlagTouchesFS                   // reads or writes the directory hierarchy
	FlagRedirect                    // accepts > and >>
	FlagChdir                       // may replace the working directory
)

// Has reports whether all bits of want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Entry is one row of the builtin table.
type Entry struct {
	Name  string
	Kind  Kind
	Flags Flags
	Tier  Tier
}

// builtins is the authoritative builtin table. Lookup is by exact,
// case-sensitive name.
var builtins = []Entry{
	{"type", KindType, FlagBuiltin, TierRead},
	{"which", KindWhich, FlagBuiltin, TierRead},
	{"echo", KindEcho, FlagBuiltin | FlagTouchesFS | FlagRedirect, TierRead},
	{"exit", KindExit, FlagBuiltin, TierRead},
	{"clear", KindClear, FlagBuiltin, TierRead},
	{"pwd", KindPwd, FlagBuiltin, TierRead},
	{"cd", KindCd, FlagBuiltin | FlagTouchesFS | FlagChdir, TierRead},
	{"ls", KindLs, FlagBuiltin | FlagTouchesFS, TierRead},
	{"mkdir", KindMkdir, FlagBuiltin | FlagTouchesFS, TierWrite},
	{"cotsh", KindSelfInvoke, FlagBuiltin | FlagTouchesFS, TierRead},
}

// Builtins returns a copy of the builtin table in declaration order.
func Builtins() []Entry {
	out := make([]Entry, len(builtins))
	copy(out, builtins)
	return out
}

// LookupBuiltin returns the table entry for name.
func LookupBuiltin(name string) (Entry, bool) {
	for _, e := range builtins {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// EntryFor returns the table entry for a builtin kind.
func EntryFor(k Kind) (Entry, bool) {
	for _, e := range builtins {
		if e.Kind == k {
			return e, true
		}
	}
	return Entry{}, false
}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindExternal:
		return "external"
	case KindInvalid:
		return "invalid"
	}
	if e, ok := EntryFor(k); ok {
		return e.Name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsBuiltin reports whether k names an in-process builtin.
func (k Kind) IsBuiltin() bool {
	e, ok := EntryFor(k)
	return ok && e.Flags.Has(FlagBuiltin)
}
