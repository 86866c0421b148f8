package match

import "github.com/kordata/xlmatch/internal/grid"

// Stats summarizes a matching pass over the target grid.
type Stats struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

// Match builds the composite key for every data row of the unmerged target
// grid and resolves it against the index. The result holds one rendered
// value per data row; an unmatched key yields an empty string. Key columns
// are resolved against the target grid's own header.
func Match(g *grid.Grid, keyColumns []string, idx *Index) ([]string, Stats, error) {
	header := g.HeaderOf()
	keyCols, err := header.ResolveAll(keyColumns)
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	values := make([]string, 0, g.NumRows()-1)
	for row := 1; row < g.NumRows(); row++ {
		key := g.CompositeKey(row, keyCols)
		stats.Total++

		v, ok := idx.Lookup(key)
		if ok {
			stats.Matched++
		}
		values = append(values, v)
	}

	return values, stats, nil
}
