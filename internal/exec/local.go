package exec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
)

const waitDelay = 2 * time.Second

// Shell returns the user's shell, falling back to /bin/sh.
func Shell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// ExecuteLocal runs a command line through the user's shell, streaming
// output to the provided writers. A non-zero exit is reported through
// exitCode, not err; err is set only when the command could not run.
func ExecuteLocal(ctx context.Context, cmd string, workDir string, stdout, stderr io.Writer) (exitCode int, err error) {
	command := exec.CommandContext(ctx, Shell(), "-c", cmd)
	// Children that outlive a killed shell must not hold Wait open.
	command.WaitDelay = waitDelay

	if workDir != "" {
		command.Dir = workDir
	}

	command.Stdout = stdout
	command.Stderr = stderr

	runErr := command.Run()
	if runErr != nil {
		if ctx.Err() != nil {
			return -1, errors.WrapWithCode(ctx.Err(), errors.ErrExec,
				"Command interrupted",
				"")
		}
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run the command locally",
			"Make sure the command exists and is executable.")
	}

	return 0, nil
}
