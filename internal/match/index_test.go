package match

import (
	"errors"
	"testing"

	"github.com/kordata/xlmatch/internal/grid"
)

func buildGrid(rows ...[]string) *grid.Grid {
	return grid.New(rows)
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "10"},
		[]string{"Sales", "20"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", false)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := idx.Lookup("Sales")
	if !ok {
		t.Fatal("expected key 'Sales' in index")
	}
	if v != "20" {
		t.Errorf("expected last row to win, got %q", v)
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 key, got %d", idx.Len())
	}
}

func TestBuildIndexAccumulateNumeric(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "3"},
		[]string{"Sales", "4"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", true)
	if err != nil {
		t.Fatal(err)
	}

	v, _ := idx.Lookup("Sales")
	if v != "7" {
		t.Errorf("expected numeric sum 7, got %q", v)
	}
}

func TestBuildIndexAccumulateFloat(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "1.5"},
		[]string{"Sales", "2.25"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", true)
	if err != nil {
		t.Fatal(err)
	}

	v, _ := idx.Lookup("Sales")
	if v != "3.75" {
		t.Errorf("expected 3.75, got %q", v)
	}
}

func TestBuildIndexAccumulateMixed(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "3"},
		[]string{"Sales", "abc"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", true)
	if err != nil {
		t.Fatal(err)
	}

	v, _ := idx.Lookup("Sales")
	if v != "3;abc" {
		t.Errorf("expected prior sum stringified first, got %q", v)
	}
}

func TestBuildIndexAccumulateDedup(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Owner"},
		[]string{"Sales", "alice"},
		[]string{"Sales", "bob"},
		[]string{"Sales", "alice"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Owner", true)
	if err != nil {
		t.Fatal(err)
	}

	v, _ := idx.Lookup("Sales")
	if v != "alice;bob" {
		t.Errorf("expected distinct parts in first-seen order, got %q", v)
	}
}

func TestBuildIndexAccumulateNumericAfterString(t *testing.T) {
	// Once an entry flips to string-set mode it stays there.
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "abc"},
		[]string{"Sales", "3"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", true)
	if err != nil {
		t.Fatal(err)
	}

	v, _ := idx.Lookup("Sales")
	if v != "abc;3" {
		t.Errorf("expected %q, got %q", "abc;3", v)
	}
}

func TestBuildIndexCompositeKeys(t *testing.T) {
	g := buildGrid(
		[]string{"Region", "Dept", "Amount"},
		[]string{"North", "Sales", "10"},
		[]string{"South", "Sales", "20"},
	)

	idx, err := BuildIndex(g, []string{"Region", "Dept"}, "Amount", false)
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := idx.Lookup("North_Sales"); v != "10" {
		t.Errorf("North_Sales = %q, want 10", v)
	}
	if v, _ := idx.Lookup("South_Sales"); v != "20" {
		t.Errorf("South_Sales = %q, want 20", v)
	}
	if _, ok := idx.Lookup("Sales_North"); ok {
		t.Error("reversed key order should not resolve")
	}
}

func TestBuildIndexSkipsBlankRows(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "10"},
		[]string{"", ""},
		[]string{"", ""},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", false)
	if err != nil {
		t.Fatal(err)
	}

	if idx.Len() != 1 {
		t.Errorf("blank trailing rows should be skipped, got %d keys", idx.Len())
	}
}

func TestBuildIndexKeepsPartiallyEmptyRows(t *testing.T) {
	g := buildGrid(
		[]string{"Region", "Dept", "Amount"},
		[]string{"North", "", "10"},
		[]string{"", "", "5"},
	)

	idx, err := BuildIndex(g, []string{"Region", "Dept"}, "Amount", false)
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := idx.Lookup("North_"); v != "10" {
		t.Errorf("row with empty key segment should be indexed, got %q", v)
	}
	// All key cells empty but value present: still included, key is "_".
	if v, _ := idx.Lookup("_"); v != "5" {
		t.Errorf("row with empty keys but a value should be indexed, got %q", v)
	}
}

func TestBuildIndexColumnNotFound(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"Sales", "10"},
	)

	_, err := BuildIndex(g, []string{"Nope"}, "Amount", false)
	var cnf *grid.ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError for key column, got %v", err)
	}

	_, err = BuildIndex(g, []string{"Dept"}, "Missing", false)
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError for value column, got %v", err)
	}
}

func TestIndexKeysOrder(t *testing.T) {
	g := buildGrid(
		[]string{"Dept", "Amount"},
		[]string{"B", "1"},
		[]string{"A", "2"},
		[]string{"B", "3"},
	)

	idx, err := BuildIndex(g, []string{"Dept"}, "Amount", true)
	if err != nil {
		t.Fatal(err)
	}

	keys := idx.Keys()
	if len(keys) != 2 || keys[0] != "B" || keys[1] != "A" {
		t.Errorf("expected first-seen key order [B A], got %v", keys)
	}
}
