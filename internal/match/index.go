// Package match implements the key/value lookup core: building an index
// from a source grid and resolving each target row against it.
package match

import (
	"strconv"
	"strings"

	"github.com/kordata/xlmatch/internal/grid"
)

// joinSeparator joins the parts of a string-set aggregate.
const joinSeparator = ";"

// Value is a single index entry: either a running numeric sum or an
// ordered set of distinct string parts, never both at once.
type Value struct {
	numeric bool
	sum     float64
	parts   []string
}

// newValue creates the initial aggregate for a cell value.
func newValue(raw string, accumulate bool) *Value {
	if !accumulate {
		// Last-write-wins mode keeps the cell value verbatim.
		return &Value{parts: []string{raw}}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return &Value{numeric: true, sum: n}
	}
	return &Value{parts: splitParts(raw)}
}

// add folds a new cell value into the aggregate. Numeric stays numeric as
// long as every incoming value parses as a number; the first non-numeric
// value flips the entry into string-set mode for good, with the prior sum
// stringified as the first element.
func (v *Value) add(raw string) {
	n, err := strconv.ParseFloat(raw, 64)
	if v.numeric && err == nil {
		v.sum += n
		return
	}

	if v.numeric {
		v.numeric = false
		v.parts = splitParts(formatNumber(v.sum))
	}

	seen := make(map[string]bool, len(v.parts))
	for _, p := range v.parts {
		seen[p] = true
	}
	for _, p := range splitParts(raw) {
		if !seen[p] {
			seen[p] = true
			v.parts = append(v.parts, p)
		}
	}
}

// Render returns the value as it is written into the output column.
func (v *Value) Render() string {
	if v.numeric {
		return formatNumber(v.sum)
	}
	return strings.Join(v.parts, joinSeparator)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// splitParts breaks a raw value on the join separator, trimming and
// dropping empty pieces, so re-aggregating an already-joined value does
// not duplicate parts.
func splitParts(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, joinSeparator) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Index maps composite keys to aggregated values. Built once per run from
// the source grid; read-only afterwards.
type Index struct {
	entries map[string]*Value
	order   []string
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Keys returns the keys in first-seen order.
func (idx *Index) Keys() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Lookup returns the rendered value for a key. A miss returns ("", false),
// never an error.
func (idx *Index) Lookup(key string) (string, bool) {
	v, ok := idx.entries[key]
	if !ok {
		return "", false
	}
	return v.Render(), true
}

// BuildIndex scans every data row of an unmerged grid and builds the
// key→value index. Key and value columns are resolved by name against the
// header row; a missing name aborts with ColumnNotFoundError before any
// row is read.
//
// With accumulate off, the last row wins for a repeated key. With
// accumulate on, same-key values combine: numeric values sum, anything
// else becomes a ;-joined set of distinct strings in first-seen order.
// Rows whose key cells and value cell are all empty are skipped.
func BuildIndex(g *grid.Grid, keyColumns []string, valueColumn string, accumulate bool) (*Index, error) {
	header := g.HeaderOf()
	keyCols, err := header.ResolveAll(keyColumns)
	if err != nil {
		return nil, err
	}
	valueCol, err := header.Resolve(valueColumn)
	if err != nil {
		return nil, err
	}

	idx := &Index{entries: make(map[string]*Value)}
	for row := 1; row < g.NumRows(); row++ {
		raw := g.Cell(row, valueCol)
		if raw == "" && allEmpty(g, row, keyCols) {
			continue
		}

		key := g.CompositeKey(row, keyCols)
		if !accumulate {
			if _, ok := idx.entries[key]; !ok {
				idx.order = append(idx.order, key)
			}
			idx.entries[key] = newValue(raw, false)
			continue
		}

		if existing, ok := idx.entries[key]; ok {
			existing.add(raw)
			continue
		}
		idx.entries[key] = newValue(raw, true)
		idx.order = append(idx.order, key)
	}

	return idx, nil
}

func allEmpty(g *grid.Grid, row int, cols []int) bool {
	for _, col := range cols {
		if g.Cell(row, col) != "" {
			return false
		}
	}
	return true
}
