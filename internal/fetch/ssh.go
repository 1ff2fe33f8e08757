package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/util"
	"github.com/rileyhilliard/bwstat/pkg/sshutil"
)

// DialFunc opens an SSH connection. Tests replace it with a mock.
type DialFunc func(ctx context.Context, host string, opts sshutil.Options) (sshutil.SSHClient, error)

func dialReal(ctx context.Context, host string, opts sshutil.Options) (sshutil.SSHClient, error) {
	return sshutil.Dial(ctx, host, opts)
}

// SSH fetches with the built-in client by streaming `cat <path>` into a
// temp file next to dest, renamed into place on success.
type SSH struct {
	core config.CoreConfig
	opts sshutil.Options
	log  logger.Logger

	Dial DialFunc
}

// NewSSH creates a native SSH fetcher.
func NewSSH(core config.CoreConfig, sshCfg config.SSHConfig, log logger.Logger) *SSH {
	return &SSH{
		core: core,
		opts: sshutil.Options{
			User:                  core.User,
			Timeout:               sshCfg.Timeout,
			StrictHostKeyChecking: sshCfg.StrictHostKeyChecking,
		},
		log:  log,
		Dial: dialReal,
	}
}

// Command returns the remote command that prints the sample file.
func (s *SSH) Command() string {
	return util.RemoteCommand("cat", s.core.Path)
}

// Fetch implements Fetcher. As with scp, transport errors are logged and
// the fetch only fails if dest is missing afterwards.
func (s *SSH) Fetch(ctx context.Context, dest string) error {
	err := s.copy(ctx, dest)
	if err != nil {
		s.log.Warn("ssh copy from %s failed: %s", s.core.IPAddress, firstLine(err))
	}
	return checkDest(dest, err)
}

func (s *SSH) copy(ctx context.Context, dest string) (err error) {
	client, err := s.Dial(ctx, s.core.IPAddress, s.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, client.Close()) }()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".bwstat-*.csv")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrFetch,
			"Couldn't create a temp file next to "+dest,
			"Check the output directory is writable.")
	}
	committed := false
	defer func() {
		if !committed {
			err = multierr.Append(err, ignoreNotExist(os.Remove(tmp.Name())))
		}
	}()

	cmd := s.Command()
	s.log.Debug("%s: %s", s.core.IPAddress, cmd)

	var stderr strings.Builder
	code, runErr := client.ExecStream(ctx, cmd, tmp, &stderr)
	closeErr := tmp.Close()
	if runErr != nil {
		return multierr.Append(runErr, closeErr)
	}
	if closeErr != nil {
		return closeErr
	}
	if code != 0 {
		return errors.New(errors.ErrFetch,
			fmt.Sprintf("'%s' exited with status %d: %s", cmd, code, strings.TrimSpace(stderr.String())),
			"Check core.path points at the collector output.")
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	committed = true
	return nil
}

func ignoreNotExist(err error) error {
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func firstLine(err error) string {
	msg := strings.TrimPrefix(err.Error(), "✗ ")
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
