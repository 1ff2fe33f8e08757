// Package util holds shell quoting for commands run on the board or
// handed to the local shell.
package util

import "strings"

// ShellQuote single-quotes s for a POSIX shell. An embedded ' becomes '\''.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ShellQuotePreserveTilde quotes path but leaves a leading ~ or ~/ bare so
// the board's shell expands it to the login's home directory. ~user is
// quoted like any other text.
func ShellQuotePreserveTilde(path string) string {
	switch {
	case path == "~":
		return path
	case strings.HasPrefix(path, "~/"):
		return "~/" + ShellQuote(path[2:])
	default:
		return ShellQuote(path)
	}
}

// RemoteCommand builds "<name> <path>" with the path quoted for the board's
// shell, e.g. RemoteCommand("test -e", "~/stats.csv").
func RemoteCommand(name, path string) string {
	return name + " " + ShellQuotePreserveTilde(path)
}
