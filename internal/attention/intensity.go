// Package attention turns a row of attention scores into display
// intensities in [0, 1].
//
// Only keys at or before the query position are transformed. Keys after
// the query are outside the causal prefix and carry their raw score
// through untouched in every mode.
package attention

import "math"

// Grid is a read-only, row-major score matrix. At must return 0 for
// positions it does not hold.
type Grid interface {
	Shape() (rows, cols int)
	At(q, k int) float32
}

// Stats summarises the strictly positive scores in the causal prefix
// scores[q][0..q]. Zero and negative scores are not counted.
type Stats struct {
	Max      float64
	Min      float64
	Positive int
}

// RowStats scans the causal prefix of row q.
func RowStats(g Grid, q int) Stats {
	rows, cols := g.Shape()
	var st Stats
	if q < 0 || q >= rows {
		return st
	}
	last := q
	if last >= cols {
		last = cols - 1
	}
	for k := 0; k <= last; k++ {
		s := float64(g.At(q, k))
		if !(s > 0) {
			continue
		}
		if st.Positive == 0 || s > st.Max {
			st.Max = s
		}
		if st.Positive == 0 || s < st.Min {
			st.Min = s
		}
		st.Positive++
	}
	return st
}

// Intensities returns one value per key for query q. A query outside
// [0, rows), including a negative "nothing hovered" index, yields zeros.
func Intensities(g Grid, q int, mode Mode) []float64 {
	rows, cols := g.Shape()
	out := make([]float64, cols)
	if q < 0 || q >= rows {
		return out
	}
	var st Stats
	if mode == ModeNormalized {
		st = RowStats(g, q)
	}
	fillRow(out, g, q, mode, st)
	return out
}

func fillRow(out []float64, g Grid, q int, mode Mode, st Stats) {
	for k := range out {
		s := float64(g.At(q, k))
		if k > q {
			out[k] = s
			continue
		}
		out[k] = Intensity(s, q, mode, st)
	}
}

// Intensity transforms a single in-scope score. st is only consulted in
// normalized mode.
func Intensity(s float64, q int, mode Mode, st Stats) float64 {
	switch mode {
	case ModeNormalized:
		return normalize(s, st)
	case ModeAmplified:
		return amplify(s, q)
	default:
		return s
	}
}

// amplify rescales by half the causal row length, (q+1)/2, and clips at 1.
func amplify(s float64, q int) float64 {
	return math.Min(s*(float64(q+1)/2), 1)
}

func normalize(s float64, st Stats) float64 {
	// Zero entries stay zero; the linear map below would push them negative.
	if !(s > 0) || st.Positive == 0 {
		return 0
	}
	if st.Max == st.Min {
		return 1
	}
	v := (s - st.Min) / (st.Max - st.Min)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
