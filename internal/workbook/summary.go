// Package workbook inspects the spreadsheet returned by the conversion
// backend so the user gets immediate confirmation of what was produced.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetSummary describes one sheet of the downloaded workbook.
type SheetSummary struct {
	Name string
	Rows int
	Cols int
}

// Summary describes the whole workbook.
type Summary struct {
	Sheets []SheetSummary
}

// Summarize opens the workbook at path and reports each sheet's row count and
// widest row. The response body is treated as opaque during download, so this
// is also the first point where a corrupt or non-xlsx response surfaces.
func Summarize(path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var s Summary
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}

		maxCols := 0
		for _, row := range rows {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
		s.Sheets = append(s.Sheets, SheetSummary{Name: name, Rows: len(rows), Cols: maxCols})
	}
	return &s, nil
}

// String renders one line per sheet, e.g. "Consolidated: 42 rows x 5 columns".
func (s *Summary) String() string {
	var b strings.Builder
	for i, sh := range s.Sheets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %d rows x %d columns", sh.Name, sh.Rows, sh.Cols)
	}
	return b.String()
}
