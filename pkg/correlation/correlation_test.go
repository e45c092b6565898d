package correlation

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/comicweb/pkg/weight"
)

const tol = 1e-12

func TestPearsonPerfectlyCorrelated(t *testing.T) {
	w := weight.NewMatrix(
		[]string{"Cyclops", "Jean Grey", "Beast"},
		[]string{"1", "2", "3", "4"},
		[][]float64{
			{1, 0, 1, 0},
			{1, 0, 1, 0},
			{0, 1, 0, 1},
		})

	m := Pearson(w)

	if v, ok := m.Lookup("Cyclops", "Jean Grey"); !ok || math.Abs(v-1) > tol {
		t.Errorf("corr(Cyclops, Jean Grey) = %v, %v; want 1", v, ok)
	}
	if v, ok := m.Lookup("Cyclops", "Beast"); !ok || math.Abs(v+1) > tol {
		t.Errorf("corr(Cyclops, Beast) = %v, %v; want -1", v, ok)
	}
}

func TestPearsonConstantVectorsAreUndefined(t *testing.T) {
	// A and B appear in every issue: their vectors are constant.
	w := weight.NewMatrix(
		[]string{"A", "B", "C"},
		[]string{"1", "2", "3", "4"},
		[][]float64{
			{1, 1, 1, 1},
			{1, 1, 1, 1},
			{1, 0, 0.5, 0},
		})

	m := Pearson(w)

	for _, pair := range [][2]string{{"A", "B"}, {"B", "A"}, {"A", "C"}, {"C", "B"}} {
		if v, ok := m.Lookup(pair[0], pair[1]); ok {
			t.Errorf("corr(%s, %s) = %v, want undefined", pair[0], pair[1], v)
		}
	}
	if !math.IsNaN(m.At(0, 1)) {
		t.Errorf("At(A, B) = %v, want NaN", m.At(0, 1))
	}
	// Every off-diagonal pair touches A or B.
	if got := m.UndefinedCount(); got != 6 {
		t.Errorf("UndefinedCount = %d, want 6", got)
	}
}

func TestPearsonInexactConstantsAreUndefined(t *testing.T) {
	for _, c := range []float64{0.1, 0.5, 0.3} {
		for _, n := range []int{3, 7, 10} {
			t.Run(fmt.Sprintf("%v x %d", c, n), func(t *testing.T) {
				issues := make([]string, n)
				constRow := make([]float64, n)
				other := make([]float64, n)
				for k := range n {
					issues[k] = fmt.Sprint(k + 1)
					constRow[k] = c
					other[k] = float64(k % 2)
				}
				m := Pearson(weight.NewMatrix([]string{"Const", "Other"}, issues, [][]float64{constRow, other}))
				if v, ok := m.Lookup("Const", "Other"); ok {
					t.Errorf("corr(Const, Other) = %v, want undefined", v)
				}
				if got := m.UndefinedCount(); got != 2 {
					t.Errorf("UndefinedCount = %d, want 2", got)
				}
			})
		}
	}
}

func TestPearsonSymmetric(t *testing.T) {
	w := weight.NewMatrix(
		[]string{"A", "B", "C", "D"},
		[]string{"1", "2", "3", "4", "5"},
		[][]float64{
			{1, 0.5, 0, 0, 0.1},
			{0, 1, 1, 0.5, 0},
			{0.1, 0.1, 0, 1, 1},
			{1, 1, 0.5, 0, 0},
		})

	m := Pearson(w)

	for i := range m.Len() {
		for j := range m.Len() {
			a, b := m.At(i, j), m.At(j, i)
			if math.Abs(a-b) > tol {
				t.Errorf("At(%d,%d)=%v != At(%d,%d)=%v", i, j, a, j, i, b)
			}
			if a < -1 || a > 1 {
				t.Errorf("At(%d,%d)=%v out of range", i, j, a)
			}
		}
	}
}

func TestPearsonSparseVectors(t *testing.T) {
	// No overlapping issues: correlation is defined and negative.
	w := weight.NewMatrix(
		[]string{"A", "B"},
		[]string{"1", "2", "3", "4"},
		[][]float64{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
		})

	v, ok := Pearson(w).Lookup("A", "B")
	if !ok {
		t.Fatal("corr(A, B) should be defined")
	}
	if want := -1.0 / 3.0; math.Abs(v-want) > tol {
		t.Errorf("corr(A, B) = %v, want %v", v, want)
	}
}

func TestPearsonEmpty(t *testing.T) {
	tests := []struct {
		name string
		w    *weight.Matrix
	}{
		{"no characters", weight.NewMatrix(nil, []string{"1"}, nil)},
		{"no issues", weight.NewMatrix([]string{"A", "B"}, nil, [][]float64{{}, {}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := Pearson(tt.w); m.Len() != 0 {
				t.Errorf("Len = %d, want 0", m.Len())
			}
		})
	}
}

func TestLookupUnknownName(t *testing.T) {
	m := FromValues([]string{"A", "B"}, [][]float64{{1, 0.2}, {0.2, 1}})
	if _, ok := m.Lookup("A", "Z"); ok {
		t.Error("unknown name should not be found")
	}
	if v, ok := m.Lookup("B", "A"); !ok || v != 0.2 {
		t.Errorf("Lookup(B, A) = %v, %v", v, ok)
	}
}
