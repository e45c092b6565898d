// Package correlation computes pairwise Pearson correlation between the weight
// vectors of characters.
//
// # Undefined Correlation
//
// Pearson correlation divides by the standard deviation of both vectors. A
// character whose weights are the same in every issue (never appears, or
// appears identically throughout) has zero variance, so every pair involving
// it is undefined. Undefined entries are stored as NaN and reported as missing
// by [Matrix.Lookup]; they are never coerced to 0 or 1. The edge builder drops
// them.
//
// # Shape
//
// The matrix is square and symmetric with one row and column per character.
// A weight matrix with no characters or no issues yields an empty matrix.
package correlation

import (
	"math"
	"slices"

	"github.com/matzehuels/comicweb/pkg/weight"
)

// Matrix is a symmetric character × character correlation matrix.
type Matrix struct {
	names  []string
	index  map[string]int
	values [][]float64
}

// Pearson correlates every pair of rows of w across the issue dimension.
//
// Each row is centered once; the coefficient for (i, j) is the dot product of
// the centered rows divided by the product of their norms. Only the upper
// triangle is computed and then mirrored, so the result is exactly symmetric.
// Values are clamped into [-1, 1].
func Pearson(w *weight.Matrix) *Matrix {
	if w.Rows() == 0 || w.Cols() == 0 {
		return &Matrix{index: map[string]int{}}
	}

	n, cols := w.Rows(), w.Cols()
	centered := make([][]float64, n)
	norms := make([]float64, n)
	for i := range n {
		row := w.Row(i)
		if constant(row) {
			// The centered row would carry rounding noise instead of zeros
			// for values such as 0.1, so constancy is decided on the input.
			centered[i] = row
			continue
		}
		var mean float64
		for _, v := range row {
			mean += v
		}
		mean /= float64(cols)

		var ss float64
		for j, v := range row {
			d := v - mean
			row[j] = d
			ss += d * d
		}
		centered[i] = row
		norms[i] = math.Sqrt(ss)
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for i := range n {
		for j := i; j < n; j++ {
			v := coefficient(centered[i], centered[j], norms[i], norms[j])
			values[i][j] = v
			values[j][i] = v
		}
	}

	names := w.Characters()
	return &Matrix{names: names, index: indexOf(names), values: values}
}

// constant reports whether every value of row equals the first.
func constant(row []float64) bool {
	for _, v := range row[1:] {
		if v != row[0] {
			return false
		}
	}
	return true
}

// coefficient returns NaN when either vector has zero variance.
func coefficient(x, y []float64, nx, ny float64) float64 {
	if nx == 0 || ny == 0 {
		return math.NaN()
	}
	var dot float64
	for k := range x {
		dot += x[k] * y[k]
	}
	r := dot / (nx * ny)
	return max(-1, min(1, r))
}

// FromValues builds a matrix from precomputed values. Rows are copied; the
// caller is responsible for symmetry.
func FromValues(names []string, values [][]float64) *Matrix {
	m := &Matrix{names: slices.Clone(names), index: indexOf(names), values: make([][]float64, len(values))}
	for i, r := range values {
		m.values[i] = slices.Clone(r)
	}
	return m
}

// Names returns the character labels shared by rows and columns.
func (m *Matrix) Names() []string { return slices.Clone(m.names) }

// Len returns the number of characters.
func (m *Matrix) Len() int { return len(m.names) }

// At returns the raw entry (i, j), which may be NaN.
func (m *Matrix) At(i, j int) float64 { return m.values[i][j] }

// Lookup returns the correlation between two named characters. The boolean is
// false when either name is unknown or the correlation is undefined.
func (m *Matrix) Lookup(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	v := m.values[i][j]
	if !Defined(v) {
		return 0, false
	}
	return v, true
}

// Defined reports whether v is a usable correlation value.
func Defined(v float64) bool { return !math.IsNaN(v) }

// UndefinedCount returns the number of off-diagonal entries that are undefined.
func (m *Matrix) UndefinedCount() int {
	count := 0
	for i := range m.values {
		for j, v := range m.values[i] {
			if i != j && !Defined(v) {
				count++
			}
		}
	}
	return count
}

func indexOf(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}
