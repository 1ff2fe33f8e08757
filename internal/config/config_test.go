package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.Core.RefreshRate)
	assert.Equal(t, "root", cfg.Core.User)
	assert.Equal(t, 30000, cfg.Core.IntervalUS)
	assert.Equal(t, TransportSCP, cfg.Core.Transport)
	assert.Equal(t, "J6 L3 Bandwidth stats plot", cfg.Plot.Title)
	assert.Equal(t, 10.0, cfg.Plot.Width)
	assert.True(t, cfg.SSH.StrictHostKeyChecking)
	assert.Equal(t, 10*time.Second, cfg.SSH.Timeout)
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "configstat.yaml", `
core:
  ipaddress: 192.168.1.10
  path: /home/root/statcollector.csv
  refreshrate: 2
plot:
  exclude: [STATCOL_IVA]
ssh:
  timeout: 3s
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.10", cfg.Core.IPAddress)
	assert.Equal(t, "/home/root/statcollector.csv", cfg.Core.Path)
	assert.Equal(t, 2, cfg.Core.RefreshRate)
	assert.Equal(t, 2*time.Second, cfg.Core.Refresh())
	assert.Equal(t, "root", cfg.Core.User, "default user kept")
	assert.Equal(t, 30000, cfg.Core.IntervalUS)
	assert.Equal(t, []string{"STATCOL_IVA"}, cfg.Plot.Exclude)
	assert.Equal(t, 3*time.Second, cfg.SSH.Timeout)
	assert.Equal(t, "root@192.168.1.10:/home/root/statcollector.csv", cfg.Core.Remote())
}

func TestLoad_TOML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.toml", `
[core]
ipaddress = "10.0.0.2"
path = "/tmp/stats.csv"
refreshrate = 1
transport = "SSH"
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2", cfg.Core.IPAddress)
	assert.Equal(t, TransportSSH, cfg.Core.Transport)
}

func TestLoad_INI(t *testing.T) {
	p := writeFile(t, t.TempDir(), "configstat.ini", `[core]
ipaddress = 192.168.1.10
path = /home/root/statcollector.csv
refreshrate = 5

[plot]
exclude = STATCOL_IVA,STATCOL_DSS

[ssh]
strict_host_key_checking = false
timeout = 3s
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.10", cfg.Core.IPAddress)
	assert.Equal(t, "/home/root/statcollector.csv", cfg.Core.Path)
	assert.Equal(t, 5, cfg.Core.RefreshRate)
	assert.Equal(t, "root", cfg.Core.User, "default user kept")
	assert.Equal(t, TransportSCP, cfg.Core.Transport)
	assert.Equal(t, []string{"STATCOL_IVA", "STATCOL_DSS"}, cfg.Plot.Exclude)
	assert.False(t, cfg.SSH.StrictHostKeyChecking)
	assert.Equal(t, 3*time.Second, cfg.SSH.Timeout)
}

func TestLoad_INIKeysCaseInsensitive(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.ini", "[CORE]\nIPAddress=10.0.0.2\nPath=/tmp/stats.csv\nRefreshRate=1\n")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2", cfg.Core.IPAddress)
	assert.Equal(t, "/tmp/stats.csv", cfg.Core.Path)
	assert.Equal(t, 1, cfg.Core.RefreshRate)
}

func TestLoad_INIBadNumber(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.ini", "[core]\nipaddress=1.2.3.4\npath=/x\nrefreshrate=soon\n")

	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadFor_INI(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, "config.ini", "[core]\nipaddress = 192.168.1.10\npath = /home/root/statcollector.csv\nrefreshrate = 5\n")

	cfg, path, err := LoadFor("", WatchConfigName)
	require.NoError(t, err)
	assert.Equal(t, "config.ini", filepath.Base(path))
	assert.Equal(t, "192.168.1.10", cfg.Core.IPAddress)
	assert.Equal(t, 5*time.Second, cfg.Core.Refresh())
}

func TestINICodec_Encode(t *testing.T) {
	out, err := iniCodec{}.Encode(map[string]any{
		"core": map[string]any{"ipaddress": "192.168.1.10", "refreshrate": 5},
		"plot": map[string]any{"exclude": []any{"A", "B"}},
	})
	require.NoError(t, err)

	back := map[string]any{}
	require.NoError(t, iniCodec{}.Decode(out, back))
	assert.Equal(t, map[string]any{"ipaddress": "192.168.1.10", "refreshrate": "5"}, back["core"])
	assert.Equal(t, map[string]any{"exclude": "A,B"}, back["plot"])
}

func TestLoad_EnvOverride(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "core:\n  ipaddress: 1.1.1.1\n  path: /a\n")
	t.Setenv("BWSTAT_CORE_IPADDRESS", "2.2.2.2")
	t.Setenv("BWSTAT_CORE_INTERVAL_US", "1000")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "2.2.2.2", cfg.Core.IPAddress)
	assert.Equal(t, 1000, cfg.Core.IntervalUS)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	bad := writeFile(t, dir, "bad.yaml", "core: [unclosed\n")
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	p, err := Find("", dir, SnapshotConfigName)
	require.NoError(t, err)
	assert.Empty(t, p)

	want := writeFile(t, dir, "configstat.toml", "[core]\n")
	p, err = Find("", dir, SnapshotConfigName)
	require.NoError(t, err)
	assert.Equal(t, want, p)

	// .yaml is preferred over .toml.
	want = writeFile(t, dir, "configstat.yaml", "core: {}\n")
	p, err = Find("", dir, SnapshotConfigName)
	require.NoError(t, err)
	assert.Equal(t, want, p)

	// The bench's INI files are found too, after the other formats.
	want = writeFile(t, dir, "config.ini", "[core]\n")
	p, err = Find("", dir, WatchConfigName)
	require.NoError(t, err)
	assert.Equal(t, want, p)
	require.NoError(t, os.Remove(want))

	// Watch looks for its own file.
	p, err = Find("", dir, WatchConfigName)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestFind_Explicit(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "custom.yaml", "core: {}\n")

	got, err := Find(p, "", WatchConfigName)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = Find(filepath.Join(dir, "nope.yaml"), "", WatchConfigName)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadFor(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := LoadFor("", WatchConfigName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml")

	writeFile(t, dir, "config.yaml", "core:\n  ipaddress: 1.2.3.4\n  path: /x\n")
	cfg, path, err := LoadFor("", WatchConfigName)
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "1.2.3.4", cfg.Core.IPAddress)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "plots/a.png"), ExpandTilde("~/plots/a.png"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
