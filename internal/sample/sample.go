// Package sample parses the CSV files written by the on-device statistics
// collector. Every row is one sampling instant and every column one
// initiator, with cells of the form "LABEL=VALUE". The device terminates each
// row with a comma, so the last field of every row is empty and is never
// treated as a column.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rileyhilliard/bwstat/internal/errors"
)

// Separator splits a cell into its label and value.
const Separator = "="

// Column is one initiator's label and its samples in file row order.
type Column struct {
	Label   string
	Samples []int64
}

// RawColumn is a column whose values are kept exactly as they appear in the
// file, without numeric coercion.
type RawColumn struct {
	Label  string
	Values []string
}

// ParseError describes a cell that could not be decoded.
// Row and Col are 1-based.
type ParseError struct {
	Row  int
	Col  int
	Cell string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: %q: %v", e.Row, e.Col, e.Cell, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errNoSeparator = fmt.Errorf("missing %q separator", Separator)
	errShortRow    = fmt.Errorf("row has fewer cells than the first row")
)

// Parse reads every data column from r and coerces each value to an integer.
func Parse(r io.Reader) ([]Column, error) {
	raw, err := ParseRaw(r)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, len(raw))
	for c, rc := range raw {
		samples := make([]int64, len(rc.Values))
		for i, v := range rc.Values {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, wrapParseError(&ParseError{Row: i + 1, Col: c + 1, Cell: rc.Label + Separator + v, Err: err})
			}
			samples[i] = n
		}
		cols[c] = Column{Label: rc.Label, Samples: samples}
	}
	return cols, nil
}

// ParseRaw reads every data column from r in a single pass.
//
// The number of columns is taken from the first row minus the trailing
// field. A column's label is the text left of the separator on the last row
// read; labels are kept byte-exact, including trailing spaces. The value is
// the text between the first separator and the next one, if any.
func ParseRaw(r io.Reader) ([]RawColumn, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var cols []RawColumn
	columnCount := -1
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrParse,
				"Couldn't read the sample file",
				"Check that the file is a CSV written by the stat collector.")
		}
		row++

		if columnCount < 0 {
			columnCount = len(record) - 1
			if columnCount < 0 {
				columnCount = 0
			}
			cols = make([]RawColumn, columnCount)
		}

		if len(record) < columnCount {
			return nil, wrapParseError(&ParseError{Row: row, Col: len(record) + 1, Err: errShortRow})
		}

		for c := 0; c < columnCount; c++ {
			parts := strings.Split(record[c], Separator)
			if len(parts) < 2 {
				return nil, wrapParseError(&ParseError{Row: row, Col: c + 1, Cell: record[c], Err: errNoSeparator})
			}
			cols[c].Label = parts[0]
			cols[c].Values = append(cols[c].Values, parts[1])
		}
	}

	return cols, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Column, error) {
	f, err := openSampleFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParseRawFile opens path and parses it with ParseRaw.
func ParseRawFile(path string) ([]RawColumn, error) {
	f, err := openSampleFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRaw(f)
}

// Floats converts raw values to float64 for plotting.
func (rc RawColumn) Floats() ([]float64, error) {
	out := make([]float64, len(rc.Values))
	for i, v := range rc.Values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%s sample %d: %w", strings.TrimSpace(rc.Label), i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// Floats converts the samples to float64 for plotting.
func (c Column) Floats() []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = float64(s)
	}
	return out
}

// AllZero reports whether every sample in the column equals zero.
// An empty column counts as all zero.
func (c Column) AllZero() bool {
	for _, s := range c.Samples {
		if s != 0 {
			return false
		}
	}
	return true
}

func openSampleFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrFetch,
				fmt.Sprintf("Sample file not found: %s", path),
				"Check that the copy from the device succeeded.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("Couldn't open sample file %s", path),
			"Check file permissions.")
	}
	return f, nil
}

func wrapParseError(pe *ParseError) error {
	return errors.WrapWithCode(pe, errors.ErrParse,
		"Malformed cell in sample file",
		"Every cell must look like LABEL=INTEGER.")
}
