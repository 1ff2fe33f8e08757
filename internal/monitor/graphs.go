package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty); bit n sets dot n+1.
const brailleBase = '⠀'

// brailleDots maps [row][col] to the bit offset of that dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

func normalizeValue(val, lo, hi float64) float64 {
	if hi > lo {
		return (val - lo) / (hi - lo)
	}
	return 0.5
}

func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderBrailleGraph draws data as a line graph on the fixed [lo, hi] scale.
// Each character holds two samples horizontally and four dots vertically, so
// the graph shows up to 2*width samples; longer series are compressed
// keeping peaks and shorter ones are right-aligned. Values outside the scale
// are clamped. Columns are colored by their highest value.
func RenderBrailleGraph(data []float64, width, height int, lo, hi float64) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2

	points := data
	if len(data) > targetPoints {
		points = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	colMax := make([]float64, width)
	offset := targetPoints - len(points)

	for i, val := range points {
		col := (i + offset) / 2
		sub := (i + offset) % 2
		if val > colMax[col] {
			colMax[col] = val
		}

		// Always light the bottom dot so zero samples stay visible.
		dotHeight := clampInt(int(normalizeValue(val, lo, hi)*float64(totalDots)), totalDots)
		if dotHeight == 0 {
			dotHeight = 1
		}

		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - dot/4
			bit := brailleDots[3-dot%4][sub]
			grid[row][col] |= rune(1 << bit)
		}
	}

	lines := make([]string, height)
	for r, row := range grid {
		var b strings.Builder
		for c, ch := range row {
			pct := normalizeValue(colMax[c], lo, hi) * 100
			b.WriteString(lipgloss.NewStyle().Foreground(MetricColor(pct)).Render(string(ch)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// resampleData compresses data to targetSize points, keeping the maximum of
// each bucket so spikes survive.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) <= targetSize {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		maxVal := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > maxVal {
				maxVal = data[j]
			}
		}
		result[i] = maxVal
	}
	return result
}
