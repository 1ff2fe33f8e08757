package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bwstat/internal/plot"
)

// GraphHeight is the number of text rows per panel graph.
const GraphHeight = 4

// axisWidth is the width of the y-axis label column ("100 ┤").
const axisWidth = 5

const defaultWidth = 80

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderPanels())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	var updateText string
	switch s := m.SecondsSinceUpdate(); {
	case m.lastUpdate.IsZero():
		updateText = "waiting"
	case s == 0:
		updateText = "just now"
	default:
		updateText = fmt.Sprintf("%ds ago", s)
	}

	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("bwstat watch")
	info := LabelStyle.Render(fmt.Sprintf(" | %s | %d columns | cycle %d | every %s | updated %s",
		m.host, len(m.series), m.cycles, m.interval, updateText))

	header := title + info
	if m.refreshing {
		header += LabelStyle.Render(" | fetching")
	}
	if m.fetchErr != "" {
		header += " " + WarnTextStyle.Render(m.fetchErr)
	}
	return HeaderStyle.Render(header)
}

// renderPanels renders every column panel; this is the viewport content.
func (m Model) renderPanels() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if len(m.series) == 0 {
		return LabelStyle.Render("Waiting for the first sample file...")
	}

	panels := make([]string, len(m.series))
	for i, s := range m.series {
		panels[i] = renderPanel(s, width)
	}
	return strings.Join(panels, "\n")
}

func renderPanel(s plot.Series, width int) string {
	last := "-"
	if n := len(s.Values); n > 0 {
		last = strconv.FormatFloat(s.Values[n-1], 'f', -1, 64)
	}

	graphWidth := width - 4 - axisWidth
	if graphWidth < 1 {
		graphWidth = 1
	}
	graph := strings.Split(RenderBrailleGraph(s.Values, graphWidth, GraphHeight, plot.GridYMin, plot.GridYMax), "\n")

	lines := []string{SectionHeader(strings.TrimSpace(s.Label), last, width)}
	for row, g := range graph {
		lines = append(lines, SectionContentLine(axisLabel(row)+g, width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// axisLabel labels the top and bottom graph rows with the scale bounds.
func axisLabel(row int) string {
	var label string
	switch row {
	case 0:
		label = strconv.Itoa(plot.GridYMax)
	case GraphHeight - 1:
		label = strconv.Itoa(plot.GridYMin)
	}
	return AxisStyle.Render(fmt.Sprintf("%3s ┤", label))
}

func (m Model) renderFooter() string {
	hints := []string{"q quit", "r refresh", "↑↓ scroll", "? help"}
	if m.ready && m.viewport.TotalLineCount() > m.viewport.Height {
		hints = append(hints, fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
