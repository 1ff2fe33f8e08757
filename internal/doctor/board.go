package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/util"
	"github.com/rileyhilliard/bwstat/pkg/sshutil"
)

// DialFunc opens an SSH connection. Tests replace it with a mock.
type DialFunc func(ctx context.Context, host string, opts sshutil.Options) (sshutil.SSHClient, error)

// DialBoard dials with the real SSH client.
func DialBoard(ctx context.Context, host string, opts sshutil.Options) (sshutil.SSHClient, error) {
	return sshutil.Dial(ctx, host, opts)
}

// BoardConnectCheck opens an SSH connection to the board. The connection is
// kept for SampleFileCheck and released with Close.
type BoardConnectCheck struct {
	Core config.CoreConfig
	SSH  config.SSHConfig
	Dial DialFunc

	client sshutil.SSHClient
}

func (c *BoardConnectCheck) Name() string     { return "board_connect" }
func (c *BoardConnectCheck) Category() string { return "BOARD" }

func (c *BoardConnectCheck) Run() CheckResult {
	ctx := context.Background()
	if c.SSH.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.SSH.Timeout)
		defer cancel()
	}

	client, err := c.Dial(ctx, c.Core.IPAddress, sshutil.Options{
		User:                  c.Core.User,
		Timeout:               c.SSH.Timeout,
		StrictHostKeyChecking: c.SSH.StrictHostKeyChecking,
	})
	if err != nil {
		res := failFromError(err)
		res.Message = fmt.Sprintf("Cannot connect to %s@%s: %s", c.Core.User, c.Core.IPAddress, firstLine(res.Message))
		if res.Suggestion == "" {
			res.Suggestion = "Check the board is powered, on the network, and core.ipaddress is right"
		}
		return res
	}

	c.client = client
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Connected to %s@%s", c.Core.User, c.Core.IPAddress),
	}
}

// Close releases the connection, if one was opened.
func (c *BoardConnectCheck) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// SampleFileCheck verifies the collector's CSV exists on the board and has
// data in it.
type SampleFileCheck struct {
	Board *BoardConnectCheck
	Path  string
}

func (c *SampleFileCheck) Name() string     { return "sample_file" }
func (c *SampleFileCheck) Category() string { return "BOARD" }

func (c *SampleFileCheck) Run() CheckResult {
	if c.Board == nil || c.Board.client == nil {
		return CheckResult{
			Status:  StatusFail,
			Message: fmt.Sprintf("Sample file %s: no connection", c.Path),
		}
	}

	_, _, code, err := c.Board.client.Exec(util.RemoteCommand("test -e", c.Path))
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot check %s: %v", c.Path, err),
			Suggestion: "Check SSH connection",
		}
	}
	if code != 0 {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Sample file not found on the board: %s", c.Path),
			Suggestion: "Start the statistics collector, or fix core.path",
		}
	}

	_, _, code, err = c.Board.client.Exec(util.RemoteCommand("test -s", c.Path))
	if err == nil && code != 0 {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Sample file is empty: %s", c.Path),
			Suggestion: "The collector has not written a sample yet",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Sample file present: %s", c.Path),
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// NewChecks builds the standard check list for a config. cfg may be nil when
// no usable config was found, in which case only local checks run.
func NewChecks(cfg *config.Config, dial DialFunc) ([]Check, *BoardConnectCheck) {
	checks := []Check{&SSHKeyCheck{}}
	if cfg == nil {
		return checks, nil
	}

	if cfg.Core.Transport == config.TransportSCP {
		checks = append([]Check{&ToolCheck{Tool: "scp"}}, checks...)
	}

	board := &BoardConnectCheck{Core: cfg.Core, SSH: cfg.SSH, Dial: dial}
	checks = append(checks, board, &SampleFileCheck{Board: board, Path: cfg.Core.Path})
	return checks, board
}
