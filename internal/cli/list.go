package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcelocantos/cotsh/internal/cap"
	"github.com/marcelocantos/cotsh/internal/cap/builtin"
)

// flagNames lists the names of the capability flags set in f.
func flagNames(f cap.Flags) string {
	var names []string
	if f.Has(cap.FlagTouchesFS) {
		names = append(names, "fs")
	}
	if f.Has(cap.FlagRedirect) {
		names = append(names, "redirect")
	}
	if f.Has(cap.FlagChdir) {
		names = append(names, "chdir")
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

// RunBuiltins lists the builtin table, optionally filtered to one tier.
func RunBuiltins(w io.Writer, tierFilter string) int {
	var filter *cap.Tier
	if tierFilter != "" {
		t, err := cap.ParseTier(tierFilter)
		if err != nil {
			fmt.Fprintf(w, "cotsh builtins: %v\n", err)
			return 1
		}
		filter = &t
	}

	reg := cap.NewRegistry()
	builtin.RegisterAll(reg)

	for _, e := range cap.Builtins() {
		if filter != nil && e.Tier != *filter {
			continue
		}
		desc := "run a cotsh script"
		if c, err := reg.Lookup(e.Name); err == nil {
			desc = c.Description()
		}
		fmt.Fprintf(w, "%-8s %-6s %-18s %s\n", e.Name, e.Tier, flagNames(e.Flags), desc)
	}
	return 0
}
