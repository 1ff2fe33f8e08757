// Package watch runs the continuous fetch, parse and redraw cycle.
package watch

import (
	"context"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/fetch"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/sample"
)

// Result is the outcome of one cycle.
type Result struct {
	Cycle    int
	Columns  []sample.RawColumn
	FetchErr error
	Duration time.Duration
	At       time.Time
}

// Cycle fetches the sample file into a fixed local path and parses it.
type Cycle struct {
	Fetcher fetch.Fetcher
	Path    string
	Log     logger.Logger

	count int
}

// NewCycle creates a cycle writing to path.
func NewCycle(f fetch.Fetcher, path string, log logger.Logger) *Cycle {
	if log == nil {
		log = logger.Noop()
	}
	return &Cycle{Fetcher: f, Path: path, Log: log}
}

// Run performs one cycle. A failed fetch is logged and recorded in
// Result.FetchErr; parsing then proceeds against whatever file is on disk,
// so a stale copy from an earlier cycle is redrawn. The returned error is
// non-nil only when the file cannot be parsed.
func (c *Cycle) Run(ctx context.Context) (Result, error) {
	c.count++
	start := time.Now()
	res := Result{Cycle: c.count, At: start}

	if err := c.Fetcher.Fetch(ctx, c.Path); err != nil {
		c.Log.Warn("cycle %d: fetch failed: %v", c.count, err)
		res.FetchErr = err
	}

	cols, err := sample.ParseRawFile(c.Path)
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	res.Columns = cols
	c.Log.Debug("cycle %d: %d columns in %s", c.count, len(cols), res.Duration)
	return res, nil
}

// RenderFunc presents one cycle's result.
type RenderFunc func(Result) error

// Loop runs cycles until ctx is cancelled, sleeping interval between them.
// Cycles never overlap; a slow cycle delays the next one.
//
// A cycle that fails because the sample file is missing is logged and the
// loop continues. Parse and render errors end the loop.
func Loop(ctx context.Context, c *Cycle, interval time.Duration, render RenderFunc) error {
	for {
		res, err := c.Run(ctx)
		switch {
		case err == nil:
			if err := render(res); err != nil {
				return err
			}
		case errors.IsCode(err, errors.ErrFetch):
			c.Log.Warn("cycle %d: %v", res.Cycle, err)
		default:
			return err
		}

		if !sleep(ctx, interval) {
			return nil
		}
	}
}

// sleep waits for d or until ctx is done. It reports whether the wait ran
// to completion.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
