package sshutil

import (
	"context"
	"io"
)

// SSHClient is the subset of Client used by the fetchers.
// The testing subpackage provides a mock that satisfies it.
type SSHClient interface {
	// Exec runs a command and returns stdout, stderr, and exit code.
	// Exit code is -1 if the command couldn't be executed at all.
	Exec(cmd string) (stdout, stderr []byte, exitCode int, err error)

	// ExecStream runs a command and streams output to the provided writers.
	ExecStream(ctx context.Context, cmd string, stdout, stderr io.Writer) (exitCode int, err error)

	Close() error
}

var _ SSHClient = (*Client)(nil)
