package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsComposite(t *testing.T) {
	tests := map[string]bool{
		"cd a; pwd":          true,
		"make && echo ok":    true,
		"false || echo no":   true,
		"echo a & b":         false,
		"echo a | b":         false,
		"echo 'a; b'":        false,
		`echo "x && y"`:      false,
		`echo a\;b`:          false,
		`echo "a;b"`:         false,
		"echo plain":         false,
		"echo 'quoted' ; ls": true,
	}
	for line, want := range tests {
		if got := IsComposite(line); got != want {
			t.Errorf("IsComposite(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestParseKeepsQuotedOperators(t *testing.T) {
	cmd := Parse(`echo "a;b" && echo 'c||d'`)
	want := []string{`echo "a;b"`, `echo 'c||d'`}
	var got []string
	for _, s := range cmd.Steps {
		got = append(got, s.Line)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want []Step
	}{
		{
			"cd a; pwd",
			[]Step{{Line: "cd a", Op: OpSequential}, {Line: "pwd"}},
		},
		{
			"a && b || c ; d",
			[]Step{
				{Line: "a", Op: OpAndThen},
				{Line: "b", Op: OpOrElse},
				{Line: "c", Op: OpSequential},
				{Line: "d"},
			},
		},
		{
			"echo 'x;y';",
			[]Step{{Line: "echo 'x;y'", Op: OpSequential}, {Line: ""}},
		},
		{
			";;",
			[]Step{{Line: "", Op: OpSequential}, {Line: "", Op: OpSequential}, {Line: ""}},
		},
	}
	for _, tt := range tests {
		got := Parse(tt.line).Steps
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
