// Package testing provides an in-memory SSHClient for tests.
package testing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rileyhilliard/bwstat/pkg/sshutil"
)

// CommandResponse is a canned reply for an exact command string.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// MockClient answers `cat <path>` from Files and anything else from
// registered responses. Unknown commands succeed with no output.
type MockClient struct {
	mu       sync.Mutex
	host     string
	files    map[string][]byte
	commands map[string]CommandResponse
	closed   bool

	// Commands records every command received, in order.
	Commands []string
}

var _ sshutil.SSHClient = (*MockClient)(nil)

// NewMockClient creates a mock with no files.
func NewMockClient(host string) *MockClient {
	return &MockClient{
		host:     host,
		files:    make(map[string][]byte),
		commands: make(map[string]CommandResponse),
	}
}

// WriteFile places content at path on the fake board.
func (m *MockClient) WriteFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// SetCommandResponse registers a reply for an exact command.
func (m *MockClient) SetCommandResponse(cmd string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[cmd] = resp
}

// Exec implements sshutil.SSHClient.
func (m *MockClient) Exec(cmd string) (stdout, stderr []byte, exitCode int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, -1, fmt.Errorf("%s: connection closed", m.host)
	}
	m.Commands = append(m.Commands, cmd)

	if resp, ok := m.commands[cmd]; ok {
		return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
	}

	if rest, ok := strings.CutPrefix(cmd, "cat "); ok {
		path := unquote(rest)
		content, found := m.files[path]
		if !found {
			return nil, []byte("cat: can't open '" + path + "': No such file or directory\n"), 1, nil
		}
		return content, nil, 0, nil
	}

	return nil, nil, 0, nil
}

// ExecStream implements sshutil.SSHClient.
func (m *MockClient) ExecStream(ctx context.Context, cmd string, stdout, stderr io.Writer) (exitCode int, err error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	out, errOut, code, execErr := m.Exec(cmd)
	if execErr != nil {
		return -1, execErr
	}
	if stdout != nil && len(out) > 0 {
		if _, err := stdout.Write(out); err != nil {
			return -1, err
		}
	}
	if stderr != nil && len(errOut) > 0 {
		_, _ = stderr.Write(errOut)
	}
	return code, nil
}

// Close marks the connection as closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// unquote undoes single-quote shell quoting, including the '\'' escape and
// an unquoted leading ~/.
func unquote(arg string) string {
	arg = strings.TrimSpace(arg)
	prefix := ""
	if strings.HasPrefix(arg, "~/'") {
		prefix, arg = "~/", arg[2:]
	}
	if len(arg) >= 2 && arg[0] == '\'' && arg[len(arg)-1] == '\'' {
		arg = strings.ReplaceAll(arg[1:len(arg)-1], `'\''`, "'")
	}
	return prefix + arg
}
