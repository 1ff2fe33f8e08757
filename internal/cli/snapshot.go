package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/fetch"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/plot"
	"github.com/rileyhilliard/bwstat/internal/report"
	"github.com/rileyhilliard/bwstat/internal/sample"
	"github.com/rileyhilliard/bwstat/internal/stats"
	"github.com/rileyhilliard/bwstat/internal/ui"
)

// newFetcher builds the transport for a config. Tests swap it for a fake.
var newFetcher = fetch.New

// SnapshotOptions holds options for one snapshot run.
type SnapshotOptions struct {
	ConfigPath string // --config; empty means configstat.* in the working directory
	Source     Source
	Output     string // Plot file; empty means <csv name>.png
	XLSX       string // Workbook path; empty skips the export
	NoPlot     bool
	Out        io.Writer
	Live       bool // Out is a terminal
}

// Snapshot fetches (or opens) the sample file, prints the statistics table
// and writes the overlay plot.
func Snapshot(ctx context.Context, opts SnapshotOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := logger.NewEnvLogger("[snapshot]")
	path := opts.Source.Path

	if opts.Source.Local && !fetch.Exists(path) {
		return errors.New(errors.ErrFetch,
			"File not found: "+path,
			"Check the path, or leave out -f to fetch from the board.")
	}

	cfg, err := loadSnapshotConfig(opts.ConfigPath, !opts.Source.Local, log)
	if err != nil {
		return err
	}

	pd := ui.NewPhaseDisplay(out, opts.Live)

	if !opts.Source.Local {
		start := time.Now()
		pd.RenderProgress("Fetching " + cfg.Core.Remote())
		if err := newFetcher(cfg, log).Fetch(ctx, path); err != nil {
			pd.RenderFailed("Fetch failed", time.Since(start))
			return err
		}
		pd.RenderSuccess("Fetched "+path, time.Since(start))
	}

	start := time.Now()
	pd.RenderProgress("Parsing " + path)
	cols, err := sample.ParseFile(path)
	if err != nil {
		pd.RenderFailed("Parse failed", time.Since(start))
		return err
	}
	analysis, err := stats.Analyze(cols, cfg.Core.IntervalUS, cfg.Plot.Exclude)
	if err != nil {
		pd.RenderFailed("Statistics failed", time.Since(start))
		return err
	}
	pd.RenderSuccess(fmt.Sprintf("Parsed %s: %d columns, %d samples", path, len(cols), sampleCount(cols)), time.Since(start))

	fmt.Fprint(out, ui.RenderStatsTable(analysis.Rows))

	if opts.NoPlot {
		pd.RenderSkipped("Plot", "--no-plot")
	} else {
		if err := writeOverlay(pd, analysis, plotPath(opts.Output, path), cfg.Plot); err != nil {
			return err
		}
	}

	if opts.XLSX != "" {
		start := time.Now()
		if err := report.WriteXLSX(opts.XLSX, analysis, cols); err != nil {
			pd.RenderFailed("Workbook failed", time.Since(start))
			return err
		}
		pd.RenderSuccess("Wrote "+opts.XLSX, time.Since(start))
	}

	return nil
}

func writeOverlay(pd *ui.PhaseDisplay, a *stats.Analysis, dest string, pc config.PlotConfig) error {
	pd.RenderPlacements(a.Decisions)

	start := time.Now()
	pd.RenderProgress("Plotting " + dest)
	series := plot.OverlaySeries(a)
	if err := plot.SaveOverlay(dest, series, plotOptions(pc)); err != nil {
		pd.RenderFailed("Plot failed", time.Since(start))
		return err
	}
	pd.RenderSuccess(fmt.Sprintf("Wrote %s (%d series)", dest, len(series)), time.Since(start))
	return nil
}

// loadSnapshotConfig loads configstat.*. Reading a local file works without
// one; fetching needs the board address.
func loadSnapshotConfig(explicit string, fetching bool, log logger.Logger) (*config.Config, error) {
	path, err := config.Find(explicit, "", config.SnapshotConfigName)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	switch {
	case path != "":
		log.Debug("using config %s", path)
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	case fetching:
		return nil, errors.New(errors.ErrConfig,
			"No "+config.SnapshotConfigName+".yaml found in the current directory",
			"Run 'bwstat init --snapshot' to create one, or point at it with --config.")
	default:
		log.Debug("no %s file, using defaults", config.SnapshotConfigName)
		cfg = config.DefaultConfig()
	}

	var reqs []config.Requirement
	if fetching {
		reqs = append(reqs, config.RequireRemote())
	}
	if err := config.Validate(cfg, reqs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// plotPath returns output, or the CSV path with a .png extension.
func plotPath(output, csvPath string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".png"
}

func plotOptions(pc config.PlotConfig) plot.Options {
	return plot.Options{Title: pc.Title, Width: pc.Width, Height: pc.Height}
}

func sampleCount(cols []sample.Column) int {
	if len(cols) == 0 {
		return 0
	}
	return len(cols[0].Samples)
}
