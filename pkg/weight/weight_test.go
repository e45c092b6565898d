package weight

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/comicweb/pkg/appearance"
)

func table(t *testing.T, issues []string, cells map[string]map[string]appearance.Kind, order ...string) *appearance.Table {
	t.Helper()
	tbl, err := appearance.NewTable(issues)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range order {
		if err := tbl.AddCharacter(name); err != nil {
			t.Fatal(err)
		}
		for issue, k := range cells[name] {
			if err := tbl.Set(name, issue, k); err != nil {
				t.Fatal(err)
			}
		}
	}
	return tbl
}

func TestApplySingleAppearance(t *testing.T) {
	tbl := table(t, []string{"1", "2", "3", "4"},
		map[string]map[string]appearance.Kind{"Nightcrawler": {"1": appearance.Appearances}},
		"Nightcrawler")

	m, err := Apply(tbl, DefaultScheme())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := m.Row(0)
	if want := []float64{1, 0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("vector = %v, want %v", got, want)
	}
}

func TestApplyDefaultWeights(t *testing.T) {
	tbl := table(t, []string{"1", "2", "3", "4", "5"},
		map[string]map[string]appearance.Kind{"Colossus": {
			"1": appearance.Appearances,
			"2": appearance.MinorAppearances,
			"3": appearance.Mentions,
			"4": appearance.Invocations,
			"5": appearance.Kind("Cameo"),
		}},
		"Colossus")

	m, err := Apply(tbl, DefaultScheme())
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 0.5, 0.1, 0, 0}; !slices.Equal(m.Row(0), want) {
		t.Errorf("row = %v, want %v", m.Row(0), want)
	}
	if got := m.Characters(); !slices.Equal(got, []string{"Colossus"}) {
		t.Errorf("characters = %v", got)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	tbl := table(t, []string{"1", "2"},
		map[string]map[string]appearance.Kind{
			"A": {"1": appearance.Appearances},
			"B": {"2": appearance.Mentions},
		},
		"A", "B")

	first, err := Apply(tbl, DefaultScheme())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Apply(tbl, DefaultScheme())
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("applying the same scheme twice gave different matrices")
	}
}

func TestApplyStrict(t *testing.T) {
	tbl := table(t, []string{"1"},
		map[string]map[string]appearance.Kind{"A": {"1": appearance.Kind("Cameo")}},
		"A")

	if _, err := Apply(tbl, DefaultScheme(), WithStrict()); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("strict with unknown label: got %v, want ErrUnknownKind", err)
	}

	s := DefaultScheme()
	s["Cameo"] = 0.3
	m, err := Apply(tbl, s, WithStrict())
	if err != nil {
		t.Fatalf("strict with covered label: %v", err)
	}
	if m.At(0, 0) != 0.3 {
		t.Errorf("At(0,0) = %v, want 0.3", m.At(0, 0))
	}
}

func TestSchemeValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 10, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Scheme{appearance.Appearances: tt.w}
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEmptyTable(t *testing.T) {
	tbl, _ := appearance.NewTable(nil)
	m, err := Apply(tbl, DefaultScheme())
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Errorf("shape = %dx%d, want 0x0", m.Rows(), m.Cols())
	}
}
