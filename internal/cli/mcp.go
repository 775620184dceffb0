package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/marcelocantos/cotsh/internal/cap"
)

// mcpShell serialises tool calls onto one interpreter and captures what
// each line prints.
type mcpShell struct {
	mu   sync.Mutex
	sess *Session
	out  *bytes.Buffer
	log  *zap.Logger
}

func newMCPShell(opts Options) (*mcpShell, error) {
	out := &bytes.Buffer{}
	opts.Stdin = strings.NewReader("")
	opts.Stdout = out
	opts.Stderr = out
	opts.NoColor = true
	sess, err := NewSession(opts)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &mcpShell{sess: sess, out: out, log: log.Named("mcp")}, nil
}

func (m *mcpShell) handleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := req.RequireString("line")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.out.Reset()

	err = m.sess.Shell.Dispatch(ctx, line)
	text := m.out.String()
	m.log.Debug("run", zap.String("line", line), zap.Error(err))

	if code, ok := cap.IsExit(err); ok {
		// The server outlives the line; exit only reports its code.
		return mcp.NewToolResultText(text + fmt.Sprintf("[exit %d]\n", code)), nil
	}
	var status *cap.StatusError
	if errors.As(err, &status) {
		return mcp.NewToolResultError(text + fmt.Sprintf("[status %d]\n", status.Code)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (m *mcpShell) handleCwd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return mcp.NewToolResultText(m.sess.Shell.Dir().Path()), nil
}

func (m *mcpShell) server(version string) *server.MCPServer {
	s := server.NewMCPServer("cotsh", version, server.WithToolCapabilities(false))
	s.AddTool(mcp.NewTool("run",
		mcp.WithDescription("Run one cotsh line and return what it printed. "+
			"The working directory persists between calls."),
		mcp.WithString("line",
			mcp.Required(),
			mcp.Description("The command line, e.g. \"cd src && ls -l\""),
		),
	), m.handleRun)
	s.AddTool(mcp.NewTool("cwd",
		mcp.WithDescription("Return the interpreter's current directory."),
	), m.handleCwd)
	return s
}

// RunMCP serves the interpreter as MCP tools over stdio.
func RunMCP(opts Options, version string) int {
	opts.defaults()
	stderr := opts.Stderr
	m, err := newMCPShell(opts)
	if err != nil {
		fmt.Fprintf(stderr, "cotsh mcp: %v\n", err)
		return 1
	}
	if err := server.ServeStdio(m.server(version)); err != nil {
		fmt.Fprintf(stderr, "cotsh mcp: %v\n", err)
		return 1
	}
	return 0
}
