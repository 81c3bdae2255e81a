package attention

// Transformer caches the row statistics of a grid so repeated hovers in
// normalized mode skip the prefix scan. Results match Intensities exactly.
type Transformer struct {
	grid  Grid
	rows  int
	cols  int
	stats []Stats
}

// Populated is implemented by grids that know how many scores they hold.
// Rows past the last stored score read as zero and need no statistics.
type Populated interface {
	Len() int
}

// NewTransformer scans every row that holds at least one stored score.
// The declared shape alone never sizes the cache.
func NewTransformer(g Grid) *Transformer {
	rows, cols := g.Shape()
	filled := rows
	if p, ok := g.(Populated); ok {
		filled = 0
		if cols > 0 {
			filled = (p.Len() + cols - 1) / cols
		}
		if filled > rows {
			filled = rows
		}
	}
	t := &Transformer{
		grid:  g,
		rows:  rows,
		cols:  cols,
		stats: make([]Stats, filled),
	}
	for q := range t.stats {
		t.stats[q] = RowStats(g, q)
	}
	return t
}

func (t *Transformer) Shape() (rows, cols int) {
	return t.rows, t.cols
}

func (t *Transformer) Stats(q int) Stats {
	if q < 0 || q >= len(t.stats) {
		return Stats{}
	}
	return t.stats[q]
}

func (t *Transformer) Intensities(q int, mode Mode) []float64 {
	out := make([]float64, t.cols)
	if q < 0 || q >= t.rows {
		return out
	}
	fillRow(out, t.grid, q, mode, t.Stats(q))
	return out
}
