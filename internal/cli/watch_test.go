package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchCSV = "STATCOL_DSS = 10,STATCOL_IVA = 95,\nSTATCOL_DSS = 20,STATCOL_IVA = 50,\n"

type monitorCall struct {
	path     string
	interval time.Duration
	host     string
}

func useMonitor(t *testing.T) *[]monitorCall {
	t.Helper()
	var calls []monitorCall
	orig := runMonitor
	runMonitor = func(ctx context.Context, cycle *watch.Cycle, interval time.Duration, host string) error {
		calls = append(calls, monitorCall{path: cycle.Path, interval: interval, host: host})
		return nil
	}
	t.Cleanup(func() { runMonitor = orig })
	return &calls
}

func TestWatch_LiveView(t *testing.T) {
	tests := []struct {
		name         string
		interval     time.Duration
		wantInterval time.Duration
	}{
		{name: "refreshrate from config", wantInterval: 7 * time.Second},
		{name: "interval flag wins", interval: 2 * time.Second, wantInterval: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			writeConfig(t, dir, config.WatchConfigName, func(c *config.Config) { c.Core.RefreshRate = 7 })
			useFetcher(t, &fakeFetcher{body: watchCSV})
			calls := useMonitor(t)
			outfile := filepath.Join(dir, "live.csv")

			err := Watch(context.Background(), WatchOptions{Outfile: outfile, Interval: tt.interval})

			require.NoError(t, err)
			require.Len(t, *calls, 1)
			assert.Equal(t, monitorCall{path: outfile, interval: tt.wantInterval, host: "192.168.1.10"}, (*calls)[0])
		})
	}
}

func TestWatch_DefaultOutfile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, config.WatchConfigName, nil)
	useFetcher(t, &fakeFetcher{body: watchCSV})
	calls := useMonitor(t)

	require.NoError(t, Watch(context.Background(), WatchOptions{}))

	require.Len(t, *calls, 1)
	assert.Regexp(t, `^\d{8}-\d{6}\.csv$`, (*calls)[0].path)
}

func TestWatch_Plain(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, config.WatchConfigName, nil)
	f := &fakeFetcher{body: watchCSV}
	useFetcher(t, f)
	calls := useMonitor(t)
	image := filepath.Join(dir, "grid.png")
	var buf bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Watch(ctx, WatchOptions{
		Outfile:  filepath.Join(dir, "live.csv"),
		Output:   image,
		Plain:    true,
		Interval: 50 * time.Millisecond,
		Out:      &buf,
	})

	require.NoError(t, err)
	assert.Empty(t, *calls, "live view is not started")
	assert.NotEmpty(t, f.dests)
	assert.Contains(t, buf.String(), "cycle 1: 2 columns")
	assert.Contains(t, buf.String(), "STATCOL_IVA")
	assert.FileExists(t, image)
}

func TestWatch_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		write bool
		edit  func(*config.Config)
	}{
		{name: "no config file"},
		{name: "no board address", write: true, edit: func(c *config.Config) { c.Core.IPAddress = "" }},
		{name: "unknown transport", write: true, edit: func(c *config.Config) { c.Core.Transport = "ftp" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			if tt.write {
				writeConfig(t, dir, config.WatchConfigName, tt.edit)
			}
			calls := useMonitor(t)

			err := Watch(context.Background(), WatchOptions{})

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Empty(t, *calls)
		})
	}
}

func TestWatch_ExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	path := writeConfig(t, dir, "bench", nil)
	useFetcher(t, &fakeFetcher{body: watchCSV})
	calls := useMonitor(t)

	require.NoError(t, Watch(context.Background(), WatchOptions{ConfigPath: path}))
	assert.Len(t, *calls, 1)
}
