package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	cfg := validConfig()
	cfg.Plot.Exclude = []string{"STATCOL_DSS"}

	require.NoError(t, Write(p, cfg))

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetValue_PreservesComments(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", `# bench board
core:
  ipaddress: 1.1.1.1 # lab DHCP
  path: /home/root/statcollector.csv
`)

	require.NoError(t, SetValue(p, "core", "ipaddress", "10.0.0.7"))
	require.NoError(t, SetValue(p, "core", "refreshrate", "3"))
	require.NoError(t, SetValue(p, "plot", "title", "EVM run"))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# bench board")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", cfg.Core.IPAddress)
	assert.Equal(t, 3, cfg.Core.RefreshRate)
	assert.Equal(t, "EVM run", cfg.Plot.Title)
	assert.Equal(t, "/home/root/statcollector.csv", cfg.Core.Path)
}

func TestSetValue_EmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "")

	require.NoError(t, SetValue(p, "core", "path", "/x.csv"))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/x.csv", cfg.Core.Path)
}

func TestSetValue_Errors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, SetValue(filepath.Join(dir, "missing.yaml"), "core", "path", "x"))

	p := writeFile(t, dir, "list.yaml", "- a\n- b\n")
	assert.Error(t, SetValue(p, "core", "path", "x"))

	p = writeFile(t, dir, "scalar.yaml", "core: 5\n")
	assert.Error(t, SetValue(p, "core", "path", "x"))
}
