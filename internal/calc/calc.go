// Package calc evaluates bare arithmetic lines such as "2 * (3 + 4)".
package calc

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/marcelocantos/cotsh/internal/shellerr"
)

// IsExpression reports whether line consists only of digits, decimal
// points, the operators + - * /, parentheses and spaces, with at least one
// digit.
func IsExpression(line string) bool {
	digit := false
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(".+-*/() \t", r):
		default:
			return false
		}
	}
	return digit
}

// Eval evaluates expr and returns the printed result.
func Eval(expr string) (string, error) {
	if !IsExpression(expr) || strings.Contains(expr, "//") {
		return "", shellerr.Errorf(shellerr.ErrInvalidArgument, "not an arithmetic expression: %s", expr)
	}
	thread := &starlark.Thread{Name: "calc"}
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "expr", strings.TrimSpace(expr), nil)
	if err != nil {
		return "", shellerr.Errorf(shellerr.ErrInvalidArgument, "%v", err)
	}
	switch v.(type) {
	case starlark.Int, starlark.Float:
		return v.String(), nil
	default:
		return "", shellerr.Errorf(shellerr.ErrInvalidArgument, "not a number: %s", expr)
	}
}
