package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainColors(t *testing.T) {
	t.Helper()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
}

func TestRenderBrailleGraph_Dimensions(t *testing.T) {
	plainColors(t)

	out := RenderBrailleGraph([]float64{0, 50, 100}, 10, 3, 0, 100)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 10, len([]rune(line)))
	}
}

func TestRenderBrailleGraph_FixedScale(t *testing.T) {
	plainColors(t)

	// One character, height one: two samples side by side.
	full := RenderBrailleGraph([]float64{100, 100}, 1, 1, 0, 100)
	assert.Equal(t, "⣿", full)

	// Values above the scale are clamped to a full column.
	assert.Equal(t, "⣿", RenderBrailleGraph([]float64{500, 250}, 1, 1, 0, 100))

	// Zero still lights the bottom dot.
	assert.Equal(t, "⣀", RenderBrailleGraph([]float64{0, 0}, 1, 1, 0, 100))
}

func TestRenderBrailleGraph_RightAligned(t *testing.T) {
	plainColors(t)

	out := RenderBrailleGraph([]float64{100}, 2, 1, 0, 100)

	runes := []rune(out)
	require.Len(t, runes, 2)
	assert.Equal(t, brailleBase, runes[0])
	assert.NotEqual(t, brailleBase, runes[1])
}

func TestRenderBrailleGraph_Empty(t *testing.T) {
	assert.Empty(t, RenderBrailleGraph(nil, 0, 1, 0, 100))
	assert.Empty(t, RenderBrailleGraph([]float64{1}, 5, 0, 0, 100))
}

func TestResampleData_KeepsPeaks(t *testing.T) {
	got := resampleData([]float64{1, 9, 2, 3, 8, 4}, 3)

	assert.Equal(t, []float64{9, 3, 8}, got)
	assert.Equal(t, []float64{1, 2}, resampleData([]float64{1, 2}, 5))
	assert.Nil(t, resampleData(nil, 3))
}

func TestMetricColor(t *testing.T) {
	assert.Equal(t, ColorHealthy, MetricColor(10))
	assert.Equal(t, ColorWarning, MetricColor(75))
	assert.Equal(t, ColorCritical, MetricColor(95))
}

func TestSectionLines(t *testing.T) {
	plainColors(t)

	header := SectionHeader("STATCOL_DSS", "42", 40)
	assert.Equal(t, 40, lipgloss.Width(header))
	assert.True(t, strings.HasPrefix(header, "╭─ STATCOL_DSS"))
	assert.True(t, strings.HasSuffix(header, "42 ╮"))

	assert.Equal(t, 40, lipgloss.Width(SectionContentLine("x", 40)))
	assert.Equal(t, "╰"+strings.Repeat("─", 38)+"╯", SectionFooter(40))
}
