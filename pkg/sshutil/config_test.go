package sshutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSSHConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config")
	content := `
Host *
  ServerAliveInterval 30

Host evm j6
  HostName 192.168.1.50
  User root

Host build-box
  HostName build.lab
  Port 2222

Host evm
  User ignored
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))

	hosts, err := ParseSSHConfigFile(p)
	require.NoError(t, err)

	require.Len(t, hosts, 3)
	assert.Equal(t, "build-box", hosts[0].Alias)
	assert.Equal(t, "2222", hosts[0].Port)
	assert.Equal(t, "evm", hosts[1].Alias)
	assert.Equal(t, "192.168.1.50", hosts[1].Hostname)
	assert.Equal(t, "root", hosts[1].User)
	assert.Equal(t, "j6", hosts[2].Alias)
}

func TestParseSSHConfigFile_Missing(t *testing.T) {
	hosts, err := ParseSSHConfigFile(filepath.Join(t.TempDir(), "nope"))

	assert.NoError(t, err)
	assert.Nil(t, hosts)
}

func TestParseSSHConfigFile_StopsAtMatch(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(p, []byte("Host a\n  HostName 1.1.1.1\nMatch host x\nHost b\n"), 0600))

	hosts, err := ParseSSHConfigFile(p)
	require.NoError(t, err)

	require.Len(t, hosts, 1)
	assert.Equal(t, "a", hosts[0].Alias)
}

func TestSSHHostEntryDescription(t *testing.T) {
	tests := []struct {
		entry SSHHostEntry
		want  string
	}{
		{SSHHostEntry{Alias: "evm"}, "evm"},
		{SSHHostEntry{Alias: "evm", Hostname: "evm"}, "evm"},
		{SSHHostEntry{Alias: "evm", Hostname: "10.0.0.2", User: "root"}, "10.0.0.2, user: root"},
		{SSHHostEntry{Alias: "evm", Port: "22"}, "evm"},
		{SSHHostEntry{Alias: "evm", Port: "2200"}, "port: 2200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.entry.Description())
	}
}
