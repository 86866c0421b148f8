// Package xlsx reads and writes .xlsx workbooks for the matching engine,
// surfacing sheet data as grids plus merged-cell spans.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/kordata/xlmatch/internal/grid"
)

// ListSheets returns the sheet names of a workbook in file order.
func ListSheets(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ListColumns returns the header-row column names of a sheet, with empty
// headers synthesized the same way the matching engine sees them.
// An empty sheet name selects the first sheet.
func ListColumns(path, sheet string) ([]string, error) {
	g, _, err := ReadSheet(path, sheet)
	if err != nil {
		return nil, err
	}
	return g.HeaderOf().Names(), nil
}

// ReadSheet loads one sheet into a grid along with its merged-cell spans.
// An empty sheet name selects the first sheet. The caller runs
// grid.Unmerge before using the data.
func ReadSheet(path, sheet string) (*grid.Grid, []grid.Span, error) {
	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet, err = resolveSheet(f, sheet)
	if err != nil {
		return nil, nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read sheet %q of %s: %w", sheet, path, err)
	}

	spans, err := readSpans(f, sheet)
	if err != nil {
		return nil, nil, err
	}

	return grid.New(rows), spans, nil
}

func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return f, nil
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if sheet == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == sheet {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found — available sheets: %v", sheet, sheets)
}

// readSpans converts the sheet's merged-cell ranges into 0-indexed spans.
func readSpans(f *excelize.File, sheet string) ([]grid.Span, error) {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read merged cells of sheet %q: %w", sheet, err)
	}

	spans := make([]grid.Span, 0, len(merged))
	for _, m := range merged {
		startCol, startRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, fmt.Errorf("invalid merge range %q: %w", m.GetStartAxis(), err)
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("invalid merge range %q: %w", m.GetEndAxis(), err)
		}
		spans = append(spans, grid.Span{
			RowStart: startRow - 1,
			RowEnd:   endRow - 1,
			ColStart: startCol - 1,
			ColEnd:   endCol - 1,
		})
	}
	return spans, nil
}
