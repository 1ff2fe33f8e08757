package plot

import (
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// pixelsPerInch converts the configured figure size to chart pixels.
const pixelsPerInch = 96

func pixels(inches float64) string {
	return strconv.Itoa(int(inches*pixelsPerInch)) + "px"
}

func sampleAxis(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func longest(series []Series) int {
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

func newOverlayChart(series []Series, o Options) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: XLabel, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: YLabel, Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     pixels(o.Width),
			Height:    pixels(o.Height),
		}),
	)

	line.SetXAxis(sampleAxis(longest(series)))
	for _, s := range series {
		line.AddSeries(displayLabel(s.Label), lineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

func redSplit() *opts.SplitLine {
	return &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: "red"}}
}

func newGridChart(s Series, o Options, rows int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: displayLabel(s.Label)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", SplitLine: redSplit()}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Min:       GridYMin,
			Max:       GridYMax,
			SplitLine: redSplit(),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  pixels(o.Width),
			Height: pixels(o.Height / float64(rows)),
		}),
	)
	line.SetXAxis(sampleAxis(len(s.Values)))
	line.AddSeries(displayLabel(s.Label), lineData(s.Values),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "green"}))
	return line
}

func writeOverlayHTML(path string, series []Series, o Options) error {
	return renderTo(path, newOverlayChart(series, o))
}

func writeGridHTML(path string, series []Series, o Options) error {
	page := components.NewPage()
	page.PageTitle = o.Title
	for _, s := range series {
		page.AddCharts(newGridChart(s, o, len(series)))
	}
	return renderTo(path, page)
}

type renderer interface {
	Render(w io.Writer) error
}

func renderTo(path string, r renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
