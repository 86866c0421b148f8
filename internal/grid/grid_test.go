package grid

import (
	"errors"
	"reflect"
	"testing"
)

func TestUnmergeFillsSpan(t *testing.T) {
	g := New([][]string{
		{"Dept", "Amount"},
		{"Sales", "10"},
		{"", "20"},
		{"HR", "5"},
	})

	g.Unmerge([]Span{{RowStart: 1, RowEnd: 2, ColStart: 0, ColEnd: 0}})

	if got := g.Cell(2, 0); got != "Sales" {
		t.Errorf("expected merged cell filled with 'Sales', got %q", got)
	}
	if got := g.Cell(3, 0); got != "HR" {
		t.Errorf("cell outside span changed: got %q", got)
	}
}

func TestUnmergeIdempotent(t *testing.T) {
	g := New([][]string{
		{"A", "B"},
		{"x", "1"},
		{"", "2"},
	})
	spans := []Span{{RowStart: 1, RowEnd: 2, ColStart: 0, ColEnd: 0}}

	g.Unmerge(spans)
	first := make([][]string, len(g.Rows))
	for i, r := range g.Rows {
		first[i] = append([]string(nil), r...)
	}

	g.Unmerge(spans)
	if !reflect.DeepEqual(first, g.Rows) {
		t.Errorf("second unmerge changed the grid: %v vs %v", first, g.Rows)
	}
}

func TestUnmergeRectangularSpan(t *testing.T) {
	g := New([][]string{
		{"A", "B", "C"},
		{"v", "", ""},
		{"", "", ""},
	})

	g.Unmerge([]Span{{RowStart: 1, RowEnd: 2, ColStart: 0, ColEnd: 2}})

	for row := 1; row <= 2; row++ {
		for col := 0; col <= 2; col++ {
			if got := g.Cell(row, col); got != "v" {
				t.Errorf("cell (%d,%d) = %q, want %q", row, col, got, "v")
			}
		}
	}
}

func TestUnmergeGrowsRaggedRows(t *testing.T) {
	// excelize trims trailing empty cells, so merged regions can reference
	// columns beyond a row's stored width.
	g := New([][]string{
		{"A", "B", "C"},
		{"x", "y", "wide"},
		{"x"},
	})

	g.Unmerge([]Span{{RowStart: 1, RowEnd: 2, ColStart: 2, ColEnd: 2}})

	if got := g.Cell(2, 2); got != "wide" {
		t.Errorf("expected ragged row grown and filled, got %q", got)
	}
}

func TestCompositeKeyOrderSensitive(t *testing.T) {
	g := New([][]string{
		{"A", "B"},
		{"left", "right"},
	})

	ab := g.CompositeKey(1, []int{0, 1})
	ba := g.CompositeKey(1, []int{1, 0})

	if ab != "left_right" {
		t.Errorf("expected 'left_right', got %q", ab)
	}
	if ba != "right_left" {
		t.Errorf("expected 'right_left', got %q", ba)
	}
	if ab == ba {
		t.Error("key order should affect the composite key")
	}
}

func TestCompositeKeyEmptySegments(t *testing.T) {
	g := New([][]string{
		{"A", "B", "C"},
		{"x", "", "z"},
	})

	if key := g.CompositeKey(1, []int{0, 1, 2}); key != "x__z" {
		t.Errorf("expected empty segment preserved, got %q", key)
	}
}

func TestHeaderResolve(t *testing.T) {
	g := New([][]string{
		{"Name", " Dept ", "", "Dept"},
		{"Alice", "Sales", "extra", "dup"},
	})
	h := g.HeaderOf()

	tests := []struct {
		name string
		want int
	}{
		{"Name", 0},
		{"Dept", 1}, // trimmed; first occurrence wins over the duplicate
		{"列3", 2},   // empty header cell gets a synthesized name
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestHeaderResolveMissing(t *testing.T) {
	g := New([][]string{{"A", "B"}})
	h := g.HeaderOf()

	_, err := h.Resolve("Missing")
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	var cnf *ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %T", err)
	}
	if cnf.Column != "Missing" {
		t.Errorf("error should name the missing column, got %q", cnf.Column)
	}
}

func TestHeaderResolveAllStopsAtFirstMiss(t *testing.T) {
	g := New([][]string{{"A", "B"}})
	h := g.HeaderOf()

	if _, err := h.ResolveAll([]string{"A", "Nope", "B"}); err == nil {
		t.Error("expected error when any name is absent")
	}
	cols, err := h.ResolveAll([]string{"B", "A"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cols, []int{1, 0}) {
		t.Errorf("expected [1 0], got %v", cols)
	}
}
