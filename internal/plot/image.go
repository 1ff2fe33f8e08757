package plot

import (
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	gridRed   = color.RGBA{R: 255, A: 255}
	lineGreen = color.RGBA{G: 128, A: 255}
)

const titleSize = 10

func xys(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

func saveOverlayImage(path string, series []Series, opts Options) error {
	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		// gonum can't range an empty line.
		if len(s.Values) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys(s.Values))
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(displayLabel(s.Label), l)
	}

	return p.Save(inches(opts.Width), inches(opts.Height), path)
}

func gridPlot(s Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = displayLabel(s.Label)
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)

	g := plotter.NewGrid()
	g.Vertical.Color = gridRed
	g.Horizontal.Color = gridRed
	p.Add(g)

	if len(s.Values) > 0 {
		l, err := plotter.NewLine(xys(s.Values))
		if err != nil {
			return nil, err
		}
		l.Color = lineGreen
		p.Add(l)
	}

	// Add widens the range to the data, so pin it afterwards.
	p.Y.Min = GridYMin
	p.Y.Max = GridYMax
	return p, nil
}

func saveGridImage(path, format string, series []Series, opts Options) error {
	plots := make([][]*plot.Plot, len(series))
	for i, s := range series {
		p, err := gridPlot(s)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	c, err := draw.NewFormattedCanvas(inches(opts.Width), inches(opts.Height), format)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      len(series),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func inches(n float64) vg.Length {
	return vg.Length(n) * vg.Inch
}
