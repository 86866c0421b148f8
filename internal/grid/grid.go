// Package grid provides the in-memory table model for spreadsheet data:
// a rectangular grid of string cells, merged-cell spans, header resolution,
// and composite key construction.
package grid

import "strings"

// Grid is a rectangular table of string cells addressed by (row, col),
// 0-indexed. Row 0 is the header row.
type Grid struct {
	Rows [][]string
}

// New creates a grid from row data. Rows may be ragged; Cell treats
// out-of-range coordinates as empty.
func New(rows [][]string) *Grid {
	return &Grid{Rows: rows}
}

// Cell returns the trimmed value at (row, col), or "" when the coordinate
// is outside the stored data.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// SetCell writes a value at (row, col), growing the row as needed.
// Rows beyond the current height are not created; spans from the file
// always reference rows the reader loaded.
func (g *Grid) SetCell(row, col int, value string) {
	if row < 0 || row >= len(g.Rows) {
		return
	}
	for len(g.Rows[row]) <= col {
		g.Rows[row] = append(g.Rows[row], "")
	}
	g.Rows[row][col] = value
}

// NumRows returns the total row count including the header row.
func (g *Grid) NumRows() int {
	return len(g.Rows)
}

// NumCols returns the widest row's column count.
func (g *Grid) NumCols() int {
	max := 0
	for _, r := range g.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Span is a rectangular merged-cell region. All bounds are inclusive and
// 0-indexed. The anchor cell is (RowStart, ColStart); it holds the span's
// authoritative value.
type Span struct {
	RowStart int
	RowEnd   int
	ColStart int
	ColEnd   int
}

// Contains reports whether (row, col) falls within the span.
func (s Span) Contains(row, col int) bool {
	return row >= s.RowStart && row <= s.RowEnd && col >= s.ColStart && col <= s.ColEnd
}

// Unmerge copies each span's anchor value into every cell of the span,
// in place. Spans are processed in order; if spans overlap, the last one
// wins for any cell it covers. Running Unmerge on an already-filled grid
// is a no-op.
func (g *Grid) Unmerge(spans []Span) {
	for _, s := range spans {
		anchor := g.Cell(s.RowStart, s.ColStart)
		for row := s.RowStart; row <= s.RowEnd; row++ {
			if row >= len(g.Rows) {
				break
			}
			for col := s.ColStart; col <= s.ColEnd; col++ {
				g.SetCell(row, col, anchor)
			}
		}
	}
}

// KeySeparator joins composite key segments.
const KeySeparator = "_"

// CompositeKey builds the lookup key for a data row from the given column
// indices, in order. Empty cells contribute empty segments; the key is
// still well-defined.
func (g *Grid) CompositeKey(row int, keyCols []int) string {
	parts := make([]string, len(keyCols))
	for i, col := range keyCols {
		parts[i] = g.Cell(row, col)
	}
	return strings.Join(parts, KeySeparator)
}
