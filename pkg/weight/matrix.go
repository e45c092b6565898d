package weight

import "slices"

// Matrix holds the weighted appearance table: one row per character, one
// column per issue. Every value is finite and non-negative.
type Matrix struct {
	characters []string
	issues     []string
	values     [][]float64
}

// NewMatrix builds a matrix from raw rows. It is mainly useful for tests and
// for callers that compute weights elsewhere; rows are copied.
func NewMatrix(characters, issues []string, rows [][]float64) *Matrix {
	m := &Matrix{
		characters: slices.Clone(characters),
		issues:     slices.Clone(issues),
		values:     make([][]float64, len(rows)),
	}
	for i, r := range rows {
		m.values[i] = slices.Clone(r)
	}
	return m
}

// Characters returns the row labels.
func (m *Matrix) Characters() []string { return slices.Clone(m.characters) }

// Issues returns the column labels.
func (m *Matrix) Issues() []string { return slices.Clone(m.issues) }

// Rows returns the number of characters.
func (m *Matrix) Rows() int { return len(m.characters) }

// Cols returns the number of issues.
func (m *Matrix) Cols() int { return len(m.issues) }

// At returns the weight of character i in issue j.
func (m *Matrix) At(i, j int) float64 { return m.values[i][j] }

// Row returns a copy of the weight vector of character i.
func (m *Matrix) Row(i int) []float64 { return slices.Clone(m.values[i]) }

// Equal reports whether m and o have the same labels and values.
func (m *Matrix) Equal(o *Matrix) bool {
	if !slices.Equal(m.characters, o.characters) || !slices.Equal(m.issues, o.issues) {
		return false
	}
	for i := range m.values {
		if !slices.Equal(m.values[i], o.values[i]) {
			return false
		}
	}
	return true
}
