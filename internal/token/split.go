package token

import (
	"strings"
	"unicode"
)

// wordBuffer accumulates the runes of the word being scanned.
type wordBuffer struct {
	b strings.Builder
}

func (wb *wordBuffer) appendRune(r rune) {
	wb.b.WriteRune(r)
}

// flushIfNotEmpty appends the trimmed word to words and resets the buffer.
func (wb *wordBuffer) flushIfNotEmpty(words []string) []string {
	w := strings.TrimSpace(wb.b.String())
	wb.b.Reset()
	if w != "" {
		words = append(words, w)
	}
	return words
}

// Split breaks line into raw words. Unquoted whitespace separates words. A
// quote opens a run that only the same quote character closes. A backslash
// escapes the next character and is kept in the word, as are the quote
// delimiters; escape resolution happens in Token.Value. An unterminated
// quote still yields the accumulated word.
func Split(line string) []string {
	var (
		buf     wordBuffer
		words   []string
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			buf.appendRune(r)
			escaped = false
		case r == '\\':
			buf.appendRune(r)
			escaped = true
		case quote != 0:
			buf.appendRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			buf.appendRune(r)
		case unicode.IsSpace(r):
			words = buf.flushIfNotEmpty(words)
		default:
			buf.appendRune(r)
		}
	}

	return buf.flushIfNotEmpty(words)
}
