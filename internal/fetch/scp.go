package fetch

import (
	"bytes"
	"context"
	"io"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/exec"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/util"
)

// RunFunc runs a shell command line. exec.ExecuteLocal satisfies it.
type RunFunc func(ctx context.Context, cmd string, workDir string, stdout, stderr io.Writer) (int, error)

// SCP fetches by running the system scp through the user's shell.
type SCP struct {
	core config.CoreConfig
	log  logger.Logger

	// Run executes the command. Tests replace it.
	Run RunFunc

	// Progress receives scp's own stdout, if set.
	Progress io.Writer
}

// NewSCP creates an scp fetcher for the board described by core.
func NewSCP(core config.CoreConfig, log logger.Logger) *SCP {
	return &SCP{core: core, log: log, Run: exec.ExecuteLocal}
}

// Command returns the shell command line that copies the file to dest.
func (s *SCP) Command(dest string) string {
	return "scp " + util.ShellQuote(s.core.Remote()) + " " + util.ShellQuote(dest)
}

// Fetch implements Fetcher. The scp exit status is logged, not returned;
// only a missing dest fails the fetch.
func (s *SCP) Fetch(ctx context.Context, dest string) error {
	cmd := s.Command(dest)
	s.log.Debug("running %s", cmd)

	stdout := s.Progress
	if stdout == nil {
		stdout = io.Discard
	}
	var stderr bytes.Buffer

	code, err := s.Run(ctx, cmd, "", stdout, &stderr)
	if err != nil {
		s.log.Warn("scp did not run: %v", err)
		return checkDest(dest, err)
	}

	var cause error
	if code != 0 {
		cause = exec.HandleExecError("scp", stderr.String(), code)
		s.log.Warn("scp exited with status %d: %s", code, bytes.TrimSpace(stderr.Bytes()))
	}
	return checkDest(dest, cause)
}
