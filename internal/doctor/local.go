package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// lookPath finds executables. Tests replace it.
var lookPath = exec.LookPath

// ToolCheck verifies an executable the scp transport shells out to.
type ToolCheck struct {
	Tool string
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Tool }
func (c *ToolCheck) Category() string { return "LOCAL" }

func (c *ToolCheck) Run() CheckResult {
	path, err := lookPath(c.Tool)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found on PATH", c.Tool),
			Suggestion: "Install OpenSSH client tools, or set core.transport: ssh",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s", c.Tool, path),
	}
}

// keyNames are the private keys tried by default, in order of preference.
var keyNames = []string{"id_ed25519", "id_rsa", "id_ecdsa"}

// SSHKeyCheck verifies that some way to authenticate exists: an agent or a
// default key file with safe permissions. Stock boards often allow root
// without a password, so a missing key is only a warning.
type SSHKeyCheck struct {
	Home string // Empty means the user's home directory
}

func (c *SSHKeyCheck) Name() string     { return "ssh_key" }
func (c *SSHKeyCheck) Category() string { return "LOCAL" }

func (c *SSHKeyCheck) Run() CheckResult {
	home := c.Home
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return CheckResult{
				Status:     StatusWarn,
				Message:    "Cannot determine home directory",
				Suggestion: "Check HOME environment variable",
			}
		}
	}

	var found, loose []string
	for _, name := range keyNames {
		info, err := os.Stat(filepath.Join(home, ".ssh", name))
		if err != nil {
			continue
		}
		found = append(found, name)
		if info.Mode().Perm()&0077 != 0 {
			loose = append(loose, name)
		}
	}

	switch {
	case len(loose) > 0:
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Insecure permissions on: %v", loose),
			Suggestion: "Fix: chmod 600 ~/.ssh/<keyfile>",
		}
	case len(found) > 0:
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("SSH key found: ~/.ssh/%s", found[0]),
		}
	case os.Getenv("SSH_AUTH_SOCK") != "":
		return CheckResult{
			Status:  StatusPass,
			Message: "No key files, using the SSH agent",
		}
	default:
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No SSH key or agent found",
			Suggestion: "Fine for boards with passwordless root; otherwise run ssh-keygen -t ed25519",
		}
	}
}
