package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kordata/xlmatch/internal/grid"
)

// ColumnUpdate describes one column write-back into a target workbook.
// Col is 0-indexed. When Header is non-empty the header cell (row 0) is
// set too, which is how appended columns get their name. Values holds one
// entry per data row, starting at row 1.
type ColumnUpdate struct {
	Sheet  string
	Col    int
	Header string
	Values []string
}

// WriteColumn opens the workbook at path, applies the column update, and
// saves the result to outputPath. The rest of the workbook (styles, other
// sheets, untouched cells) is preserved. Nothing is written if any cell
// address fails to resolve.
func WriteColumn(path string, update ColumnUpdate, outputPath string) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := resolveSheet(f, update.Sheet)
	if err != nil {
		return err
	}

	if update.Header != "" {
		if err := setCell(f, sheet, 0, update.Col, update.Header); err != nil {
			return err
		}
	}
	for i, v := range update.Values {
		if err := setValueCell(f, sheet, i+1, update.Col, v); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create output directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("could not save %s: %w", outputPath, err)
	}
	return nil
}

// WriteGrid creates a new workbook holding the grid's values on a single
// sheet. Used for flattened exports; styles and merge ranges are not
// carried over on purpose, the point is the fully-populated cells.
func WriteGrid(g *grid.Grid, sheetName, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	} else if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}

	for rowIdx, row := range g.Rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if err := setCell(f, sheetName, rowIdx, colIdx, cell); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("could not set cell %s: %w", cell, err)
	}
	return nil
}

// setValueCell writes a resolved match value, keeping numeric results as
// numbers so downstream formulas keep working.
func setValueCell(f *excelize.File, sheet string, row, col int, value string) error {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return setCell(f, sheet, row, col, value)
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, n); err != nil {
		return fmt.Errorf("could not set cell %s: %w", cell, err)
	}
	return nil
}
