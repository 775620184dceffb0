// Package pipeline splits compound lines joined by ;, && and || and runs
// their steps in order.
package pipeline

import "strings"

// scan walks line and calls fn at each operator found outside quotes and
// escapes, with the byte offset and the operator. Scanning stops if fn
// returns false.
func scan(line string, fn func(i int, op Operator) bool) {
	var (
		quote   byte
		escaped bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			if !fn(i, OpSequential) {
				return
			}
		case c == '&' && i+1 < len(line) && line[i+1] == '&':
			if !fn(i, OpAndThen) {
				return
			}
			i++
		case c == '|' && i+1 < len(line) && line[i+1] == '|':
			if !fn(i, OpOrElse) {
				return
			}
			i++
		}
	}
}

// IsComposite reports whether line contains ;, && or || outside quotes.
func IsComposite(line string) bool {
	found := false
	scan(line, func(int, Operator) bool {
		found = true
		return false
	})
	return found
}

// Parse splits line into steps at every unquoted operator. Steps are
// trimmed and may be empty.
func Parse(line string) *Command {
	cmd := &Command{}
	start := 0
	scan(line, func(i int, op Operator) bool {
		cmd.Steps = append(cmd.Steps, Step{Line: strings.TrimSpace(line[start:i]), Op: op})
		start = i + len(op)
		return true
	})
	cmd.Steps = append(cmd.Steps, Step{Line: strings.TrimSpace(line[start:])})
	return cmd
}
