// Package token turns a raw input line into classified word tokens and
// extracts the text each token stands for.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a raw word.
type Kind int

const (
	Plain Kind = iota
	Flag
	SingleQuoted
	DoubleQuoted
	WriteRedirect
	AppendRedirect
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Flag:
		return "flag"
	case SingleQuoted:
		return "single-quoted"
	case DoubleQuoted:
		return "double-quoted"
	case WriteRedirect:
		return "write-redirect"
	case AppendRedirect:
		return "append-redirect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one classified word. Raw keeps the original text, quote
// delimiters and backslashes included.
type Token struct {
	Kind Kind
	Raw  string
}

func (t Token) String() string { return t.Raw }

// Classify assigns a Kind to a raw word.
func Classify(raw string) Token {
	switch {
	case strings.HasPrefix(raw, "-"):
		return Token{Kind: Flag, Raw: raw}
	case isDelimited(raw, '"'):
		return Token{Kind: DoubleQuoted, Raw: raw}
	case isDelimited(raw, '\''):
		return Token{Kind: SingleQuoted, Raw: raw}
	case raw == ">":
		return Token{Kind: WriteRedirect, Raw: raw}
	case raw == ">>":
		return Token{Kind: AppendRedirect, Raw: raw}
	default:
		return Token{Kind: Plain, Raw: raw}
	}
}

// Tokenize splits line and classifies every word, preserving order.
func Tokenize(line string) []Token {
	words := Split(line)
	toks := make([]Token, 0, len(words))
	for _, w := range words {
		toks = append(toks, Classify(w))
	}
	return toks
}

func isDelimited(s string, q byte) bool {
	return len(s) >= 2 && s[0] == q && s[len(s)-1] == q
}

// IsRedirect reports whether t is a > or >> operator.
func (t Token) IsRedirect() bool {
	return t.Kind == WriteRedirect || t.Kind == AppendRedirect
}

// escapes maps the character after a backslash to its replacement.
// Characters not in the table keep their backslash.
type escapes map[rune]rune

var (
	singleEscapes = escapes{'\'': '\'', '\\': '\\', 'n': '\n', 't': '\t', 'r': '\r'}
	doubleEscapes = escapes{'"': '"', '\\': '\\'}
	echoEscapes   = escapes{'\'': '\'', '"': '"', '\\': '\\', 'n': '\n', 't': '\t', 'r': '\r'}
)

func (e escapes) apply(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' || i+1 == len(rs) {
			b.WriteRune(rs[i])
			continue
		}
		i++
		if rep, ok := e[rs[i]]; ok {
			b.WriteRune(rep)
		} else {
			b.WriteRune('\\')
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

// inner returns Raw without its quote delimiters for quoted kinds.
func (t Token) inner() string {
	if t.Kind == SingleQuoted || t.Kind == DoubleQuoted {
		return t.Raw[1 : len(t.Raw)-1]
	}
	return t.Raw
}

// Value returns the text the token stands for: quote delimiters stripped,
// escapes resolved for quoted kinds. Plain tokens are returned as written,
// backslashes included.
func (t Token) Value() string {
	switch t.Kind {
	case SingleQuoted:
		return singleEscapes.apply(t.inner())
	case DoubleQuoted:
		return doubleEscapes.apply(t.inner())
	default:
		return t.Raw
	}
}

// Interpret is Value with control-character escapes honoured in every kind
// of text token. echo -e uses it.
func (t Token) Interpret() string {
	switch t.Kind {
	case Plain, SingleQuoted, DoubleQuoted:
		return echoEscapes.apply(t.inner())
	default:
		return t.Raw
	}
}

// Values extracts the value of every token.
func Values(toks []Token) []string {
	vals := make([]string, len(toks))
	for i, t := range toks {
		vals[i] = t.Value()
	}
	return vals
}
