package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"echo hello", []string{"echo", "hello"}},
		{"  ls   -l\tfoo  ", []string{"ls", "-l", "foo"}},
		{`'test\'s test' test2`, []string{`'test\'s test'`, "test2"}},
		{`echo "a b" 'c d'`, []string{"echo", `"a b"`, `'c d'`}},
		{`a"b c"d`, []string{`a"b c"d`}},
		{`"it's"`, []string{`"it's"`}},
		{`a\ b`, []string{`a\ b`}},
		{`echo 'unterminated here`, []string{"echo", `'unterminated here`}},
		{`echo hi > out.txt`, []string{"echo", "hi", ">", "out.txt"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Split(tt.line)); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"-l", Flag},
		{"-'x'", Flag},
		{`"a b"`, DoubleQuoted},
		{`'a b'`, SingleQuoted},
		{`''`, SingleQuoted},
		{`'`, Plain},
		{`"`, Plain},
		{">", WriteRedirect},
		{">>", AppendRedirect},
		{">>>", Plain},
		{"file.txt", Plain},
		{`a"b"`, Plain},
	}
	for _, tt := range tests {
		if got := Classify(tt.raw).Kind; got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`'a\\b'`, `a\b`},
		{`''`, ""},
		{`""`, ""},
		{`'test\'s test'`, "test's test"},
		{`'line\nbreak'`, "line\nbreak"},
		{`'keep\q'`, `keep\q`},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`"no\nnewline"`, `no\nnewline`},
		{`a\ b`, `a\ b`},
		{`C:\dir`, `C:\dir`},
		{`a\nb`, `a\nb`},
		{`plain\`, `plain\`},
		{`x\\y`, `x\\y`},
		{"-l", "-l"},
		{">", ">"},
	}
	for _, tt := range tests {
		if got := Classify(tt.raw).Value(); got != tt.want {
			t.Errorf("Classify(%q).Value() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`a\nb`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`'it\'s'`, "it's"},
		{`"q\"x"`, `q"x`},
		{`a\zb`, `a\zb`},
	}
	for _, tt := range tests {
		if got := Classify(tt.raw).Interpret(); got != tt.want {
			t.Errorf("Classify(%q).Interpret() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize(`echo -e 'x' >> log`)
	want := []Token{
		{Kind: Plain, Raw: "echo"},
		{Kind: Flag, Raw: "-e"},
		{Kind: SingleQuoted, Raw: "'x'"},
		{Kind: AppendRedirect, Raw: ">>"},
		{Kind: Plain, Raw: "log"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
	if !got[3].IsRedirect() || got[4].IsRedirect() {
		t.Error("IsRedirect misreported")
	}
}

func TestPlainBackslashesKept(t *testing.T) {
	tests := []struct {
		line      string
		value     string
		interpret string
	}{
		{`echo C:\dir`, `C:\dir`, `C:\dir`},
		{`echo a\nb`, `a\nb`, "a\nb"},
		{`echo a\ b`, `a\ b`, `a\ b`},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.line)
		last := toks[len(toks)-1]
		if got := last.Value(); got != tt.value {
			t.Errorf("%q: Value() = %q, want %q", tt.line, got, tt.value)
		}
		if got := last.Interpret(); got != tt.interpret {
			t.Errorf("%q: Interpret() = %q, want %q", tt.line, got, tt.interpret)
		}
	}
}

func TestValues(t *testing.T) {
	got := Values(Tokenize(`a 'b c' "d"`))
	if diff := cmp.Diff([]string{"a", "b c", "d"}, got); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}
