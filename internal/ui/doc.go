// Package ui renders bwstat's terminal output: the statistics table,
// per-step progress lines, fixed-scale sparklines for the plain watch mode
// and the SSH host picker used by init.
//
// Styling goes through Lip Gloss. DisableColors switches the renderer to
// plain ASCII output (for --no-color and non-terminal stdout); the
// statistics table is then byte-identical to the collector tool's format.
package ui
