// Package plot renders sample series to image files (via gonum/plot) or
// interactive HTML pages (via go-echarts). The output format follows the
// file extension.
package plot

import (
	"fmt"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/sample"
	"github.com/rileyhilliard/bwstat/internal/stats"
)

// Axis labels of the overlay plot.
const (
	XLabel = "Sample no"
	YLabel = "Bytes per sample"
)

// Fixed y-range of each continuous-mode subplot.
const (
	GridYMin = 0
	GridYMax = 100
)

// FormatHTML is the extension handled by go-echarts.
const FormatHTML = "html"

// imageFormats are the extensions gonum/plot can write.
var imageFormats = mapset.NewSet("png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff")

// Series is one labeled line.
type Series struct {
	Label  string
	Values []float64
}

// Options sizes and titles a figure. Width and Height are in inches.
type Options struct {
	Title  string
	Width  float64
	Height float64
}

// OverlaySeries returns the lines drawn on the snapshot plot: every plottable
// column in file order followed by TOTAL when both EMIF_SYS columns exist.
func OverlaySeries(a *stats.Analysis) []Series {
	out := make([]Series, 0, len(a.Series)+1)
	for _, col := range a.Series {
		out = append(out, Series{Label: col.Label, Values: col.Floats()})
	}
	if a.HasTotal {
		total := sample.Column{Label: stats.TotalLabel, Samples: a.Total}
		out = append(out, Series{Label: total.Label, Values: total.Floats()})
	}
	return out
}

// GridSeries converts raw continuous-mode columns to plottable lines.
func GridSeries(cols []sample.RawColumn) ([]Series, error) {
	out := make([]Series, 0, len(cols))
	for _, col := range cols {
		values, err := col.Floats()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrPlot,
				"Can't plot a non-numeric sample",
				"Check the sample file for truncated rows.")
		}
		out = append(out, Series{Label: col.Label, Values: values})
	}
	return out, nil
}

// Format returns the lower-case extension of path without the dot, or an
// error if neither renderer supports it.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == FormatHTML || imageFormats.Contains(ext) {
		return ext, nil
	}
	return "", errors.New(errors.ErrPlot,
		fmt.Sprintf("Unsupported plot format '%s'", filepath.Ext(path)),
		"Use one of .png, .svg, .pdf, .jpg, .tif, .eps or .html.")
}

// SaveOverlay draws every series on one set of axes with a legend.
func SaveOverlay(path string, series []Series, opts Options) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if format == FormatHTML {
		err = writeOverlayHTML(path, series, opts)
	} else {
		err = saveOverlayImage(path, series, opts)
	}
	if err != nil {
		return wrapSaveError(path, err)
	}
	return nil
}

// SaveGrid draws one subplot per series, stacked vertically, each with the
// fixed [GridYMin, GridYMax] range.
func SaveGrid(path string, series []Series, opts Options) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return errors.New(errors.ErrPlot,
			"Nothing to plot",
			"The sample file has no data columns.")
	}
	if format == FormatHTML {
		err = writeGridHTML(path, series, opts)
	} else {
		err = saveGridImage(path, format, series, opts)
	}
	if err != nil {
		return wrapSaveError(path, err)
	}
	return nil
}

func wrapSaveError(path string, err error) error {
	return errors.WrapWithCode(err, errors.ErrPlot,
		"Couldn't write plot "+path,
		"Check the output directory exists and is writable.")
}

func displayLabel(label string) string {
	return strings.TrimSpace(label)
}
