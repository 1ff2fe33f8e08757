package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/sample"
	"github.com/rileyhilliard/bwstat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotCSV = `STATCOL_EMIF1_SYS = 300,STATCOL_EMIF2_SYS = 100,STATCOL_DSS = 0,STATCOL_IVA = 30,
STATCOL_EMIF1_SYS = 600,STATCOL_EMIF2_SYS = 200,STATCOL_DSS = 0,STATCOL_IVA = 0,
`

// snapshotDir moves into an empty directory holding the sample file.
func snapshotDir(t *testing.T) (dir, csvPath string) {
	t.Helper()
	dir = t.TempDir()
	chdir(t, dir)
	csvPath = filepath.Join(dir, "run1.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(snapshotCSV), 0644))
	return dir, csvPath
}

func expectedTable(t *testing.T) string {
	t.Helper()
	cols, err := sample.Parse(strings.NewReader(snapshotCSV))
	require.NoError(t, err)
	a, err := stats.Analyze(cols, stats.DefaultIntervalUS, nil)
	require.NoError(t, err)
	return stats.FormatTable(a.Rows, stats.TableStyle{})
}

func TestSnapshot_LocalFile(t *testing.T) {
	dir, csvPath := snapshotDir(t)
	output := filepath.Join(dir, "overlay.svg")
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: csvPath, Local: true},
		Output: output,
		Out:    &buf,
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, expectedTable(t))
	assert.Contains(t, out, "Ignoring STATCOL_EMIF1_SYS")
	assert.Contains(t, out, "Ignoring STATCOL_EMIF2_SYS")
	assert.Contains(t, out, "All elements are zero for STATCOL_DSS")
	assert.Contains(t, out, "Plotting graph for STATCOL_IVA")
	assert.Less(t, strings.Index(out, stats.Header), strings.Index(out, "Plotting graph for"),
		"table is printed before plotting")
	assert.FileExists(t, output)
}

func TestSnapshot_LocalFileMissing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: filepath.Join(dir, "nope.csv"), Local: true},
		Out:    &buf,
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
	assert.Contains(t, err.Error(), "File not found")
	assert.Empty(t, buf.String(), "nothing is printed")
	assert.NoFileExists(t, filepath.Join(dir, "nope.png"))
}

func TestSnapshot_DefaultPlotPath(t *testing.T) {
	dir, csvPath := snapshotDir(t)

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: csvPath, Local: true},
		Out:    &bytes.Buffer{},
	})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "run1.png"))
}

func TestSnapshot_NoPlotWithWorkbook(t *testing.T) {
	dir, csvPath := snapshotDir(t)
	workbook := filepath.Join(dir, "run1.xlsx")
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: csvPath, Local: true},
		NoPlot: true,
		XLSX:   workbook,
		Out:    &buf,
	})

	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "run1.png"))
	assert.FileExists(t, workbook)
	assert.Contains(t, buf.String(), "--no-plot")
	assert.NotContains(t, buf.String(), "Plotting graph for")
}

func TestSnapshot_ConfigExclude(t *testing.T) {
	dir, csvPath := snapshotDir(t)
	writeConfig(t, dir, config.SnapshotConfigName, func(c *config.Config) {
		c.Plot.Exclude = []string{"STATCOL_IVA"}
	})
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: csvPath, Local: true},
		Output: filepath.Join(dir, "out.svg"),
		Out:    &buf,
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Excluding STATCOL_IVA")
	assert.NotContains(t, buf.String(), "Plotting graph for STATCOL_IVA")
}

func TestSnapshot_Fetch(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, config.SnapshotConfigName, nil)
	f := &fakeFetcher{body: snapshotCSV}
	seen := useFetcher(t, f)
	dest := filepath.Join(dir, "20240131-154502.csv")
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: dest},
		Out:    &buf,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{dest}, f.dests)
	require.Len(t, *seen, 1)
	assert.Equal(t, "192.168.1.10", (*seen)[0].Core.IPAddress)
	assert.Contains(t, buf.String(), "Fetched "+dest)
	assert.Contains(t, buf.String(), expectedTable(t))
	assert.FileExists(t, filepath.Join(dir, "20240131-154502.png"))
}

func TestSnapshot_FetchFailure(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, config.SnapshotConfigName, nil)
	useFetcher(t, &fakeFetcher{})
	var buf bytes.Buffer

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: filepath.Join(dir, "out.csv")},
		Out:    &buf,
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
	assert.Contains(t, buf.String(), "Fetch failed")
	assert.NotContains(t, buf.String(), stats.Header)
}

func TestSnapshot_FetchNeedsConfig(t *testing.T) {
	tests := []struct {
		name  string
		write bool
		edit  func(*config.Config)
	}{
		{name: "no config file"},
		{name: "no board address", write: true, edit: func(c *config.Config) { c.Core.IPAddress = "" }},
		{name: "no remote path", write: true, edit: func(c *config.Config) { c.Core.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			if tt.write {
				writeConfig(t, dir, config.SnapshotConfigName, tt.edit)
			}
			f := &fakeFetcher{body: snapshotCSV}
			useFetcher(t, f)

			err := Snapshot(context.Background(), SnapshotOptions{
				Source: Source{Path: filepath.Join(dir, "out.csv")},
				Out:    &bytes.Buffer{},
			})

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Empty(t, f.dests, "nothing is fetched")
		})
	}
}

func TestSnapshot_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	csvPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("A=1,B=x,\n"), 0644))

	err := Snapshot(context.Background(), SnapshotOptions{
		Source: Source{Path: csvPath, Local: true},
		Out:    &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
	assert.NoFileExists(t, filepath.Join(dir, "bad.png"))
}

func TestPlotPath(t *testing.T) {
	assert.Equal(t, "x.svg", plotPath("x.svg", "run.csv"))
	assert.Equal(t, "run.png", plotPath("", "run.csv"))
	assert.Equal(t, filepath.Join("a", "b.png"), plotPath("", filepath.Join("a", "b.csv")))
	assert.Equal(t, "noext.png", plotPath("", "noext"))
}

func TestLoadSnapshotConfig_LocalWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := loadSnapshotConfig("", false, logger.Noop())

	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSampleCount(t *testing.T) {
	assert.Equal(t, 0, sampleCount(nil))
	assert.Equal(t, 2, sampleCount([]sample.Column{{Samples: []int64{1, 2}}}))
}
