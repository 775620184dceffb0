package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelocantos/cotsh/internal/config"
)

func newTestSession(t *testing.T, out *bytes.Buffer, audit bool) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.SearchPath = []string{}
	if audit {
		cfg.Audit.Enabled = true
		cfg.Audit.Path = filepath.Join(t.TempDir(), "audit.jsonl")
	}
	sess, err := NewSession(Options{
		Config:  cfg,
		Dir:     dir,
		NoColor: true,
		Stdin:   strings.NewReader(""),
		Stdout:  out,
		Stderr:  out,
	})
	require.NoError(t, err)
	return sess, dir
}

func TestRunLines(t *testing.T) {
	var out bytes.Buffer
	sess, dir := newTestSession(t, &out, false)

	input := "mkdir a\ncd a\npwd\nexit 3\necho unreachable\n"
	code := runLines(context.Background(), sess, strings.NewReader(input), &out)

	assert.Equal(t, 3, code)
	assert.Equal(t, filepath.Join(dir, "a")+"\n", out.String())
}

func TestRunLinesEndOfInput(t *testing.T) {
	var out bytes.Buffer
	sess, _ := newTestSession(t, &out, false)

	code := runLines(context.Background(), sess, strings.NewReader("echo hi\nnosuch\n"), &out)

	assert.Equal(t, 0, code)
	assert.Equal(t, "hi\nnosuch: command not found\n", out.String())
}

func TestRunScript(t *testing.T) {
	var out bytes.Buffer
	sess, dir := newTestSession(t, &out, false)

	script := filepath.Join(dir, "setup.cotsh")
	body := "# build a tree\nmkdir sub\ncd sub\necho done > marker\nexit 7\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0644))

	code := RunScript(context.Background(), sess, script, &out)

	assert.Equal(t, 7, code)
	data, err := os.ReadFile(filepath.Join(dir, "sub", "marker"))
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))
}

func TestRunScriptMissing(t *testing.T) {
	var out bytes.Buffer
	sess, dir := newTestSession(t, &out, false)

	code := RunScript(context.Background(), sess, filepath.Join(dir, "nope"), &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "no such file or directory")
}

func TestRunAudit(t *testing.T) {
	var out bytes.Buffer
	sess, _ := newTestSession(t, &out, true)
	runLines(context.Background(), sess, strings.NewReader("pwd\ncd missing\n"), &out)
	path := sess.Config.Audit.Path

	var report bytes.Buffer
	assert.Equal(t, 0, RunAudit(&report, path, "verify", 0))
	assert.Equal(t, "history log integrity verified\n", report.String())

	report.Reset()
	assert.Equal(t, 0, RunAudit(&report, path, "tail", 1))
	assert.Contains(t, report.String(), "cd missing")
	assert.Contains(t, report.String(), "error: no such file or directory: missing")
	assert.NotContains(t, report.String(), "pwd")

	report.Reset()
	assert.Equal(t, 1, RunAudit(&report, path, "rewrite", 0))
}

func TestRunBuiltins(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, RunBuiltins(&out, ""))
	for _, name := range []string{"type", "which", "echo", "exit", "clear", "pwd", "cd", "ls", "mkdir", "cotsh"} {
		assert.Contains(t, out.String(), name)
	}

	out.Reset()
	assert.Equal(t, 0, RunBuiltins(&out, "write"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "mkdir"))

	out.Reset()
	assert.Equal(t, 1, RunBuiltins(&out, "root"))
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text, res.IsError
	case *mcp.TextContent:
		return c.Text, res.IsError
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return "", false
}

func TestMCPRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.SearchPath = []string{}
	m, err := newMCPShell(Options{Config: cfg, Dir: dir})
	require.NoError(t, err)

	text, isErr := callTool(t, m.handleRun, map[string]any{"line": "mkdir a && cd a"})
	assert.False(t, isErr)
	assert.Empty(t, text)

	text, isErr = callTool(t, m.handleCwd, nil)
	assert.False(t, isErr)
	assert.Equal(t, filepath.Join(dir, "a"), text)

	text, isErr = callTool(t, m.handleRun, map[string]any{"line": "echo hi"})
	assert.False(t, isErr)
	assert.Equal(t, "hi\n", text)

	text, isErr = callTool(t, m.handleRun, map[string]any{"line": "frobnicate"})
	assert.True(t, isErr)
	assert.Equal(t, "frobnicate: command not found\n", text)

	text, isErr = callTool(t, m.handleRun, map[string]any{"line": "exit 2"})
	assert.False(t, isErr)
	assert.Equal(t, "[exit 2]\n", text)

	_, isErr = callTool(t, m.handleRun, map[string]any{})
	assert.True(t, isErr)
}

func TestRunCommand(t *testing.T) {
	var out bytes.Buffer
	sess, _ := newTestSession(t, &out, false)

	assert.Equal(t, 0, RunCommand(context.Background(), sess, "echo a; echo b"))
	assert.Equal(t, "a\nb\n", out.String())
	assert.Equal(t, 1, RunCommand(context.Background(), sess, "cd nowhere"))
	assert.Equal(t, 4, RunCommand(context.Background(), sess, "cd nowhere || exit 4"))
}
