package display

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	// DefaultWidth is the fallback width when detection fails.
	DefaultWidth = 80

	// MinWidth is the narrowest grid we lay out.
	MinWidth = 20
)

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w (a reader or writer) is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or DefaultWidth if w is not a
// terminal.
func Width(w io.Writer) int {
	f, ok := w.(fdWriter)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output to w is coloured. In auto mode colour
// is used on a terminal unless NO_COLOR is set.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}
