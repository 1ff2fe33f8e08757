package exec

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell(t *testing.T) {
	t.Setenv("SHELL", "")
	assert.Equal(t, "/bin/sh", Shell())

	t.Setenv("SHELL", "/bin/bash")
	assert.Equal(t, "/bin/bash", Shell())
}

func TestExecuteLocal_SimpleCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer

	exitCode, err := ExecuteLocal(context.Background(), "echo hello", "", &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExecuteLocal_NonZeroExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer

	exitCode, err := ExecuteLocal(context.Background(), "exit 42", "", &stdout, &stderr)

	require.NoError(t, err) // No error - command ran, just had non-zero exit
	assert.Equal(t, 42, exitCode)
}

func TestExecuteLocal_WorkingDirectory(t *testing.T) {
	tempDir := t.TempDir()
	var stdout, stderr bytes.Buffer

	exitCode, err := ExecuteLocal(context.Background(), "pwd", tempDir, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, strings.TrimSpace(stdout.String()), filepath.Base(tempDir))
}

func TestExecuteLocal_StderrOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer

	exitCode, err := ExecuteLocal(context.Background(), "echo error >&2", "", &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "error\n", stderr.String())
}

func TestExecuteLocal_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var stdout, stderr bytes.Buffer

	exitCode, err := ExecuteLocal(ctx, "sleep 5", "", &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, -1, exitCode)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
}
