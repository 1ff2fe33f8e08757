package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bwstat/internal/stats"
)

// RenderStatsTable renders the statistics table with muted rules and idle
// rows. Without colors the output is the plain stats.FormatTable layout.
func RenderStatsTable(rows []stats.Row) string {
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	header := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	return stats.FormatTable(rows, stats.TableStyle{
		Rule:   func(s string) string { return muted.Render(s) },
		Header: func(s string) string { return header.Render(s) },
		Idle:   func(s string) string { return muted.Render(s) },
	})
}
