package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline draws the most recent width values on a fixed [lo, hi]
// scale. Values outside the range are clamped.
func RenderSparkline(data []float64, width int, lo, hi float64) string {
	if len(data) == 0 || width <= 0 || hi <= lo {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	top := len(sparklineBlockRunes) - 1
	for _, v := range data {
		level := int((v - lo) / (hi - lo) * float64(top))
		if level < 0 {
			level = 0
		} else if level > top {
			level = top
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	last := (data[len(data)-1] - lo) / (hi - lo) * 100
	return lipgloss.NewStyle().Foreground(thresholdColor(last)).Render(sb.String())
}

// thresholdColor colors a percentage: green below 60, amber below 80, red
// above.
func thresholdColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorError
	case percent >= 60:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
