package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Column widths of the summary table.
const (
	LabelWidth   = 25
	AverageWidth = 12
	PeakWidth    = 10
	ActiveWidth  = 10
)

// Rule is the horizontal separator printed around the summary table.
const Rule = "-------------------------------------------------------------------"

// Header is the column heading line of the summary table.
const Header = " Initiator                   Average      Peak        Average(active)"

// FormatRow renders a row in the fixed-width table layout. The label is
// padded to LabelWidth but never truncated.
func FormatRow(r Row) string {
	var b strings.Builder
	b.WriteString(padRight(r.Label, LabelWidth))
	b.WriteString(padLeft(FormatFloat(r.Average), AverageWidth))
	b.WriteString(padLeft(FormatFloat(r.Peak), PeakWidth))
	b.WriteString(padLeft(FormatFloat(r.ActiveAverage), ActiveWidth))
	fmt.Fprintf(&b, " (%d)", r.ActiveCount)
	return b.String()
}

// TableStyle decorates parts of the summary table. Nil fields leave the
// text unchanged, so the zero value gives the plain layout.
type TableStyle struct {
	Rule   func(string) string
	Header func(string) string
	Idle   func(string) string // rows with no active samples
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// FormatTable renders the full summary table, rules included, with a
// trailing blank line.
func FormatTable(rows []Row, style TableStyle) string {
	rule := apply(style.Rule, Rule)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(apply(style.Header, Header) + "\n")
	b.WriteString(rule + "\n")
	for _, r := range rows {
		line := FormatRow(r)
		if r.ActiveCount == 0 {
			line = apply(style.Idle, line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(rule + "\n\n")
	return b.String()
}

// FormatFloat prints x with the shortest exact representation and at least
// one fractional digit: 0 -> "0.0", 12.5 -> "12.5", 3.333 -> "3.333".
func FormatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func padRight(s string, width int) string {
	if n := len(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := len(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
