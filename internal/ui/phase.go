package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bwstat/internal/stats"
)

// DividerWidth matches the width of the statistics table rule.
const DividerWidth = len(stats.Rule)

// PhaseDisplay prints one status line per pipeline step (fetch, parse,
// plot). When live is set, a pending step is shown in place and overwritten
// once it finishes.
type PhaseDisplay struct {
	w       io.Writer
	live    bool
	pending bool
}

// NewPhaseDisplay creates a display writing to w. Pass live=true only when w
// is a terminal.
func NewPhaseDisplay(w io.Writer, live bool) *PhaseDisplay {
	return &PhaseDisplay{w: w, live: live}
}

// RenderProgress shows a step in progress: ◐ Fetching 192.168.1.10...
func (pd *PhaseDisplay) RenderProgress(name string) {
	if !pd.live {
		return
	}
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "\r%s %s...", style.Render(SymbolProgress), name)
	pd.pending = true
}

// RenderSuccess shows a finished step: ● Fetched stats.csv (0.3s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	pd.clearLine()
	fmt.Fprintln(pd.w, FormatPhase(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed shows a failed step: ✗ Fetch failed (2.3s)
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	pd.clearLine()
	fmt.Fprintln(pd.w, FormatPhase(SymbolFail, ColorError, name, formatDuration(duration)))
}

// RenderSkipped shows a skipped step with an optional reason.
func (pd *PhaseDisplay) RenderSkipped(name, reason string) {
	pd.clearLine()
	if reason != "" {
		reason = "(" + reason + ")"
	}
	fmt.Fprintln(pd.w, FormatPhase(SymbolSkipped, ColorWarning, name, reason))
}

// RenderPlacements prints what the overlay plot does with every column, in
// file order.
func (pd *PhaseDisplay) RenderPlacements(decisions []stats.Decision) {
	pd.clearLine()
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	for _, d := range decisions {
		fmt.Fprintln(pd.w, muted.Render(PlacementMessage(d)))
	}
}

// PlacementMessage describes one overlay decision.
func PlacementMessage(d stats.Decision) string {
	switch d.Place {
	case stats.PlaceSpecial:
		return "Ignoring " + d.Label
	case stats.PlaceZero:
		return "All elements are zero for " + d.Label
	case stats.PlaceExcluded:
		return "Excluding " + d.Label
	default:
		return "Plotting graph for " + d.Label
	}
}

// Divider renders a horizontal line.
func (pd *PhaseDisplay) Divider() {
	pd.clearLine()
	fmt.Fprintf(pd.w, "%s\n", FormatDivider(DividerWidth))
}

func (pd *PhaseDisplay) clearLine() {
	if !pd.pending {
		return
	}
	fmt.Fprint(pd.w, "\r"+strings.Repeat(" ", 80)+"\r")
	pd.pending = false
}

// FormatPhase returns a formatted phase line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("─", width))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("(%dms)", d.Milliseconds())
	}
	return fmt.Sprintf("(%.1fs)", d.Seconds())
}
