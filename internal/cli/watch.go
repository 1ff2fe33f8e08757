package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/fetch"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/monitor"
	"github.com/rileyhilliard/bwstat/internal/watch"
)

// runMonitor starts the live view. Tests replace it.
var runMonitor = monitor.Run

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	ConfigPath string        // --config; empty means config.* in the working directory
	Outfile    string        // Local sample file, reused every cycle
	Output     string        // Grid image redrawn every cycle (plain mode only)
	Plain      bool          // Text output instead of the live view
	Interval   time.Duration // Zero means core.refreshrate
	Out        io.Writer
}

// Watch fetches and graphs the sample file until ctx is cancelled.
func Watch(ctx context.Context, opts WatchOptions) error {
	cfg, path, err := config.LoadFor(opts.ConfigPath, config.WatchConfigName)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg, config.RequireRemote()); err != nil {
		return err
	}

	log := logger.NewEnvLogger("[watch]")
	log.Debug("using config %s", path)

	interval := cfg.Core.Refresh()
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	outfile := opts.Outfile
	if outfile == "" {
		outfile = fetch.OutfileName(time.Now())
	}
	cycle := watch.NewCycle(newFetcher(cfg, log), outfile, log)

	if !opts.Plain {
		if opts.Output != "" {
			log.Warn("--output is only written in plain mode; ignoring %s", opts.Output)
		}
		return runMonitor(ctx, cycle, interval, cfg.Core.IPAddress)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	p := &watch.Plain{Out: out, Image: opts.Output, Opts: plotOptions(cfg.Plot)}
	return watch.Loop(ctx, cycle, interval, p.Render)
}
