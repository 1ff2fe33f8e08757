// Package stats turns parsed sample columns into per-initiator bandwidth
// figures and the derived TOTAL series.
package stats

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/sample"
)

// DefaultIntervalUS is the collector's sampling interval in microseconds.
const DefaultIntervalUS = 30000

const bytesPerMB = 1_000_000

var (
	// ErrNoSamples is returned for a column that has no rows.
	ErrNoSamples = stderrors.New("column has no samples")
	// ErrLengthMismatch is returned when the second TOTAL input is shorter
	// than the first.
	ErrLengthMismatch = stderrors.New("series lengths differ")
)

// Row holds the summary figures for one initiator. Average, Peak and
// ActiveAverage are rounded to two decimals.
type Row struct {
	Label         string
	Average       float64
	Peak          float64
	ActiveAverage float64
	ActiveCount   int
}

// Compute derives the summary row for one column.
//
// Each sample is scaled to a per-second rate by 1e6/intervalUS before the
// byte-to-MB conversion. Peak is max/intervalUS with no such scaling; the
// collector tooling has always reported it that way. ActiveAverage divides
// by the active count plus one.
//
// All arithmetic is float64 and rounded to two places at the end. No step
// floor-divides, so tools that report whole numbers from integer arithmetic
// can read up to one unit lower than these figures.
func Compute(label string, samples []int64, intervalUS int) (Row, error) {
	if intervalUS <= 0 {
		return Row{}, errors.New(errors.ErrStats,
			fmt.Sprintf("Invalid sampling interval %dus", intervalUS),
			"Set core.interval_us to a positive number of microseconds.")
	}
	if len(samples) == 0 {
		return Row{}, errors.WrapWithCode(ErrNoSamples, errors.ErrStats,
			fmt.Sprintf("No samples for %s", strings.TrimSpace(label)),
			"Check that the sample file has at least one data row.")
	}

	factor := 1e6 / float64(intervalUS)
	var sum float64
	peak := samples[0]
	active := 0
	for _, s := range samples {
		sum += float64(s) * factor
		if s > peak {
			peak = s
		}
		if s > 0 {
			active++
		}
	}

	return Row{
		Label:         label,
		Average:       Round2(sum / float64(len(samples)) / bytesPerMB),
		Peak:          Round2(float64(peak) / float64(intervalUS)),
		ActiveAverage: Round2(sum / float64(active+1) / bytesPerMB),
		ActiveCount:   active,
	}, nil
}

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Total returns a[i] + b[i] for every index of a. Entries of b past len(a)
// are ignored.
func Total(a, b []int64) ([]int64, error) {
	if len(b) < len(a) {
		return nil, errors.WrapWithCode(ErrLengthMismatch, errors.ErrStats,
			fmt.Sprintf("Can't build %s: EMIF1_SYS has %d samples, EMIF2_SYS has %d", TotalLabel, len(a), len(b)),
			"The sample file is probably truncated; fetch it again.")
	}
	out := make([]int64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Placement says what the overlay plot does with a column.
type Placement int

const (
	PlaceDrawn Placement = iota
	PlaceSpecial
	PlaceZero
	PlaceExcluded
)

// Decision is the placement of one column, in file order.
type Decision struct {
	Label string
	Place Placement
}

// Analysis is everything the presenters need from one parse pass.
type Analysis struct {
	IntervalUS int

	// Rows has one entry per column in file order, special columns included.
	Rows []Row

	// Series are the columns drawn individually: not special, not all zero,
	// not excluded.
	Series []sample.Column

	// Zero lists labels skipped from plotting because every sample is zero.
	Zero []string

	// Special lists labels routed into TOTAL instead of being drawn.
	Special []string

	// Decisions has one entry per column in file order.
	Decisions []Decision

	// Total is EMIF1_SYS + EMIF2_SYS. Valid only when HasTotal is set.
	Total    []int64
	HasTotal bool
}

// Analyze computes the summary rows and sorts columns into plot roles.
// Labels in exclude are compared with surrounding whitespace removed and
// are dropped from Series only; they still get a Row.
func Analyze(cols []sample.Column, intervalUS int, exclude []string) (*Analysis, error) {
	skip := mapset.NewSet[string]()
	for _, e := range exclude {
		skip.Add(strings.TrimSpace(e))
	}

	a := &Analysis{IntervalUS: intervalUS}
	var emif1, emif2 []int64
	var seen1, seen2 bool

	for _, col := range cols {
		row, err := Compute(col.Label, col.Samples, intervalUS)
		if err != nil {
			return nil, err
		}
		a.Rows = append(a.Rows, row)

		place := PlaceDrawn
		switch role := RoleOf(col.Label); {
		case role == RoleEMIF1Sys:
			emif1, seen1 = col.Samples, true
			place = PlaceSpecial
		case role == RoleEMIF2Sys:
			emif2, seen2 = col.Samples, true
			place = PlaceSpecial
		case col.AllZero():
			place = PlaceZero
		case skip.Contains(strings.TrimSpace(col.Label)):
			place = PlaceExcluded
		}
		a.Decisions = append(a.Decisions, Decision{Label: col.Label, Place: place})

		switch place {
		case PlaceSpecial:
			a.Special = append(a.Special, col.Label)
		case PlaceZero:
			a.Zero = append(a.Zero, col.Label)
		case PlaceDrawn:
			a.Series = append(a.Series, col)
		}
	}

	if seen1 && seen2 {
		total, err := Total(emif1, emif2)
		if err != nil {
			return nil, err
		}
		a.Total = total
		a.HasTotal = true
	}

	return a, nil
}
