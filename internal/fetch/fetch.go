// Package fetch copies the collector's sample file off the board.
package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/logger"
)

// TimestampLayout names fetched files, e.g. 20240131-154502.csv.
const TimestampLayout = "20060102-150405"

// Fetcher copies the remote sample file to a local path.
//
// A nil error means dest exists afterwards. Transport failures that still
// leave a file at dest (for example a stale copy from an earlier cycle) are
// only logged.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
}

// OutfileName returns the local file name for a fetch started at t.
func OutfileName(t time.Time) string {
	return t.Format(TimestampLayout) + ".csv"
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// New returns the fetcher selected by core.transport.
func New(cfg *config.Config, log logger.Logger) Fetcher {
	if log == nil {
		log = logger.Noop()
	}
	if cfg.Core.Transport == config.TransportSSH {
		return NewSSH(cfg.Core, cfg.SSH, log)
	}
	return NewSCP(cfg.Core, log)
}

// checkDest turns a missing destination into the fetch error. cause is the
// transport error, if any.
func checkDest(dest string, cause error) error {
	if Exists(dest) {
		return nil
	}
	if cause == nil {
		cause = fmt.Errorf("%s was not created", dest)
	}
	return errors.WrapWithCode(cause, errors.ErrFetch,
		"File not found: "+dest,
		"Check core.ipaddress and core.path, and that the collector is running on the board.")
}
