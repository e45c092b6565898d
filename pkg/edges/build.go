package edges

import (
	"math"

	"github.com/matzehuels/comicweb/pkg/correlation"
	"github.com/matzehuels/comicweb/pkg/weight"
)

// FromCorrelation emits one edge for every ordered pair (i, j), i != j, with a
// defined correlation. Rows are walked in order, so all edges of the first
// character come first.
func FromCorrelation(m *correlation.Matrix) List {
	names := m.Names()
	var out List
	for i := range names {
		for j := range names {
			if i == j {
				continue
			}
			v, ok := m.Lookup(names[i], names[j])
			if !ok {
				continue
			}
			out = append(out, Edge{Source: names[i], Target: names[j], Weight: v})
		}
	}
	return out
}

// FromCoAppearance weights each ordered pair by the sum, over issues, of the
// geometric mean of both characters' weights. A pair that never shares an
// issue scores 0 and is omitted.
func FromCoAppearance(w *weight.Matrix) List {
	names := w.Characters()
	var out List
	for i := range names {
		for j := range names {
			if i == j {
				continue
			}
			var total float64
			for k := range w.Cols() {
				a, b := w.At(i, k), w.At(j, k)
				if a == 0 || b == 0 {
					continue
				}
				total += math.Sqrt(a * b)
			}
			if total == 0 {
				continue
			}
			out = append(out, Edge{Source: names[i], Target: names[j], Weight: total})
		}
	}
	return out
}
