package watch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rileyhilliard/bwstat/internal/plot"
	"github.com/rileyhilliard/bwstat/internal/ui"
)

// SparklineWidth is the number of most recent samples shown per column.
const SparklineWidth = 40

// Plain renders cycles as text lines, optionally redrawing a grid image
// after every cycle.
type Plain struct {
	Out   io.Writer
	Image string
	Opts  plot.Options
}

// Render implements RenderFunc.
func (p *Plain) Render(res Result) error {
	series, err := plot.GridSeries(res.Columns)
	if err != nil {
		return err
	}

	if p.Image != "" {
		if err := plot.SaveGrid(p.Image, series, p.Opts); err != nil {
			return err
		}
	}

	fmt.Fprintf(p.Out, "%s cycle %d: %d columns (%s)\n",
		res.At.Format(time.TimeOnly), res.Cycle, len(series), res.Duration.Round(time.Millisecond))
	for _, s := range series {
		last := 0.0
		if n := len(s.Values); n > 0 {
			last = s.Values[n-1]
		}
		fmt.Fprintf(p.Out, "  %-25s %s %g\n",
			strings.TrimSpace(s.Label),
			ui.RenderSparkline(s.Values, SparklineWidth, plot.GridYMin, plot.GridYMax),
			last)
	}
	return nil
}
