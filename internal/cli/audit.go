package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/marcelocantos/cotsh/internal/audit"
)

// RunAudit handles the cotsh audit subcommand: verify checks the hash
// chain, tail prints the last n entries.
func RunAudit(w io.Writer, logPath, action string, n int) int {
	switch action {
	case "verify":
		if err := audit.Verify(logPath); err != nil {
			fmt.Fprintf(w, "history verification FAILED: %v\n", err)
			return 1
		}
		fmt.Fprintln(w, "history log integrity verified")
		return 0

	case "tail":
		entries, err := audit.Tail(logPath, n)
		if err != nil {
			fmt.Fprintf(w, "cotsh audit: %v\n", err)
			return 1
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no history entries")
			return 0
		}
		for _, e := range entries {
			status := "ok"
			if e.Status != 0 {
				status = fmt.Sprintf("status %d", e.Status)
			}
			fmt.Fprintf(w, "%6d  %s  %-8s %-9s %s\n",
				e.Seq, e.Time.Local().Format(time.DateTime), e.Kind, status, e.Line)
			if e.Error != "" {
				fmt.Fprintf(w, "        error: %s\n", e.Error)
			}
		}
		return 0

	default:
		fmt.Fprintf(w, "cotsh audit: unknown action %q (want verify or tail)\n", action)
		return 1
	}
}
