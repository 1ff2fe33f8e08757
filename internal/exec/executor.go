package exec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/bwstat/internal/errors"
)

// commandNotFoundPatterns detect "command not found" output from common
// shells. These require exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)zsh: command not found: (\S+)`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	if exitCode != 127 {
		return "", false
	}

	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return matches[1], true
		}
	}

	return "", true
}

// HandleExecError turns a failed local command into a structured error with
// a fix. It returns nil when exitCode is zero.
func HandleExecError(cmd string, stderr string, exitCode int) error {
	if exitCode == 0 {
		return nil
	}

	if name, notFound := IsCommandNotFound(stderr, exitCode); notFound {
		if name == "" {
			if parts := strings.Fields(cmd); len(parts) > 0 {
				name = parts[0]
			} else {
				name = "command"
			}
		}
		return errors.New(errors.ErrExec,
			fmt.Sprintf("'%s' not found in PATH", name),
			fmt.Sprintf("Install %s (usually the openssh-client package), or set core.transport to 'ssh' to use the built-in client.", name))
	}

	detail := strings.TrimSpace(stderr)
	if detail == "" {
		detail = "no output"
	}
	return errors.New(errors.ErrExec,
		fmt.Sprintf("Command exited with status %d: %s", exitCode, detail),
		"Check the device is reachable and the remote path exists.")
}
