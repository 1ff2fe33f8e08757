package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/sample"
	"github.com/rileyhilliard/bwstat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Options{Title: "J6 L3 Bandwidth stats plot", Width: 4, Height: 4}

func TestOverlaySeries(t *testing.T) {
	a := &stats.Analysis{
		Series: []sample.Column{
			{Label: "STATCOL_EMIF1_SYS ", Samples: []int64{1, 2}},
			{Label: "STATCOL_IVA ", Samples: []int64{3, 4}},
		},
		Total:    []int64{5, 6},
		HasTotal: true,
	}

	got := OverlaySeries(a)

	require.Len(t, got, 3)
	assert.Equal(t, "STATCOL_EMIF1_SYS ", got[0].Label)
	assert.Equal(t, []float64{3, 4}, got[1].Values)
	assert.Equal(t, Series{Label: stats.TotalLabel, Values: []float64{5, 6}}, got[2])
}

func TestOverlaySeries_NoTotal(t *testing.T) {
	a := &stats.Analysis{Series: []sample.Column{{Label: "A", Samples: []int64{1}}}}

	got := OverlaySeries(a)

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Label)
}

func TestGridSeries(t *testing.T) {
	got, err := GridSeries([]sample.RawColumn{
		{Label: "DSS ", Values: []string{" 10", " 20.5"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []Series{{Label: "DSS ", Values: []float64{10, 20.5}}}, got)
}

func TestGridSeries_NonNumeric(t *testing.T) {
	_, err := GridSeries([]sample.RawColumn{{Label: "DSS", Values: []string{"x"}}})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPlot))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "out.png", want: "png"},
		{path: "out.SVG", want: "svg"},
		{path: "dir/out.html", want: "html"},
		{path: "out.pdf", want: "pdf"},
		{path: "out.txt", wantErr: true},
		{path: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Format(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrPlot))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleSeries() []Series {
	return []Series{
		{Label: "STATCOL_EMIF1_SYS ", Values: []float64{10, 40, 30}},
		{Label: "STATCOL_IVA ", Values: []float64{5, 0, 95}},
	}
}

func requireNonEmptyFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	return content
}

func TestSaveOverlay_Images(t *testing.T) {
	for _, ext := range []string{".png", ".svg"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plot"+ext)

			require.NoError(t, SaveOverlay(path, sampleSeries(), testOpts))

			requireNonEmptyFile(t, path)
		})
	}
}

func TestSaveOverlay_EmptySeriesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	series := append(sampleSeries(), Series{Label: stats.TotalLabel})

	require.NoError(t, SaveOverlay(path, series, testOpts))
}

func TestSaveOverlay_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.html")

	require.NoError(t, SaveOverlay(path, sampleSeries(), testOpts))

	content := string(requireNonEmptyFile(t, path))
	assert.Contains(t, content, testOpts.Title)
	assert.Contains(t, content, "STATCOL_IVA")
	assert.Contains(t, content, XLabel)
}

func TestSaveOverlay_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.txt")

	err := SaveOverlay(path, sampleSeries(), testOpts)

	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestSaveOverlay_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plot.png")

	err := SaveOverlay(path, sampleSeries(), testOpts)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPlot))
}

func TestSaveGrid(t *testing.T) {
	for _, ext := range []string{".png", ".svg", ".html"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grid"+ext)

			require.NoError(t, SaveGrid(path, sampleSeries(), testOpts))

			requireNonEmptyFile(t, path)
		})
	}
}

func TestSaveGrid_HTMLHasOneChartPerSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.html")

	require.NoError(t, SaveGrid(path, sampleSeries(), testOpts))

	content := string(requireNonEmptyFile(t, path))
	assert.Contains(t, content, "STATCOL_EMIF1_SYS")
	assert.Contains(t, content, "STATCOL_IVA")
}

func TestSaveGrid_NothingToPlot(t *testing.T) {
	err := SaveGrid(filepath.Join(t.TempDir(), "grid.png"), nil, testOpts)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPlot))
}
