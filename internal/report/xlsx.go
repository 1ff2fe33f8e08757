// Package report exports a snapshot's statistics and raw samples as an
// Excel workbook.
package report

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/sample"
	"github.com/rileyhilliard/bwstat/internal/stats"
)

// Sheet names of the exported workbook.
const (
	SummarySheetName = "Summary"
	SamplesSheetName = "Samples"
)

// SummaryHeadings are the column headings of the Summary sheet.
var SummaryHeadings = []string{"Initiator", "Average", "Peak", "Average(active)", "Active samples"}

func cellName(col int, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// WriteXLSX writes the statistics rows to a Summary sheet and every column's
// samples to a Samples sheet, one initiator per column. TOTAL is appended as
// the last sample column when the analysis has one.
func WriteXLSX(path string, a *stats.Analysis, cols []sample.Column) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheetName); err != nil {
		return wrapWriteError(path, err)
	}
	if _, err := f.NewSheet(SamplesSheetName); err != nil {
		return wrapWriteError(path, err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	renderSummary(f, headerStyle, a.Rows)

	if a.HasTotal {
		cols = append(cols[:len(cols):len(cols)], sample.Column{Label: stats.TotalLabel, Samples: a.Total})
	}
	renderSamples(f, headerStyle, cols)

	if err := f.SaveAs(path); err != nil {
		return wrapWriteError(path, err)
	}
	return nil
}

func renderSummary(f *excelize.File, headerStyle int, rows []stats.Row) {
	sheet := SummarySheetName
	_ = f.SetColWidth(sheet, "A", "A", 25)
	_ = f.SetColWidth(sheet, "B", "E", 15)

	for col, heading := range SummaryHeadings {
		_ = f.SetCellValue(sheet, cellName(col+1, 1), heading)
	}
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(SummaryHeadings), 1), headerStyle)

	for i, r := range rows {
		row := i + 2
		_ = f.SetCellValue(sheet, cellName(1, row), strings.TrimSpace(r.Label))
		_ = f.SetCellValue(sheet, cellName(2, row), r.Average)
		_ = f.SetCellValue(sheet, cellName(3, row), r.Peak)
		_ = f.SetCellValue(sheet, cellName(4, row), r.ActiveAverage)
		_ = f.SetCellValue(sheet, cellName(5, row), r.ActiveCount)
	}
}

func renderSamples(f *excelize.File, headerStyle int, cols []sample.Column) {
	sheet := SamplesSheetName
	if len(cols) == 0 {
		return
	}
	_ = f.SetColWidth(sheet, "A", cellColumn(len(cols)), 22)

	for c, col := range cols {
		_ = f.SetCellValue(sheet, cellName(c+1, 1), strings.TrimSpace(col.Label))
		for i, v := range col.Samples {
			_ = f.SetCellValue(sheet, cellName(c+1, i+2), v)
		}
	}
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(cols), 1), headerStyle)
	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellColumn(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "A"
	}
	return name
}

func wrapWriteError(path string, err error) error {
	return errors.WrapWithCode(err, errors.ErrPlot,
		"Couldn't write workbook "+path,
		"Check the output directory exists and is writable.")
}
