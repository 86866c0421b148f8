package grid

import "fmt"

// ColumnNotFoundError reports a key or value column name that is absent
// from a grid's header row.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found — available columns: %v", e.Column, e.Available)
}

// Header maps trimmed column names to 0-indexed column positions.
// Empty header cells get a synthesized 列N name; for duplicate names the
// first occurrence wins.
type Header struct {
	names []string
	index map[string]int
}

// HeaderOf builds the header from the grid's row 0.
func (g *Grid) HeaderOf() *Header {
	var raw []string
	if len(g.Rows) > 0 {
		raw = g.Rows[0]
	}

	h := &Header{index: make(map[string]int, len(raw))}
	for i := range raw {
		name := g.Cell(0, i)
		if name == "" {
			name = fmt.Sprintf("列%d", i+1)
		}
		h.names = append(h.names, name)
		if _, ok := h.index[name]; !ok {
			h.index[name] = i
		}
	}
	return h
}

// Names returns the column names in sheet order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Resolve returns the column index for a name.
func (h *Header) Resolve(name string) (int, error) {
	if i, ok := h.index[name]; ok {
		return i, nil
	}
	return 0, &ColumnNotFoundError{Column: name, Available: h.Names()}
}

// ResolveAll resolves an ordered list of column names, failing on the
// first name absent from the header.
func (h *Header) ResolveAll(names []string) ([]int, error) {
	cols := make([]int, 0, len(names))
	for _, name := range names {
		i, err := h.Resolve(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, i)
	}
	return cols, nil
}
