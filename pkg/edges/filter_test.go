package edges

import (
	"math"
	"slices"
	"testing"
)

func TestFilter(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		in   List
		p    Params
		want List
	}{
		{
			name: "soft floor and top-1 agree",
			in:   List{{"A", "B", 0.9}, {"A", "C", 0.3}, {"A", "D", 0.1}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0.2, TopN: 1},
			want: List{{"A", "B", 0.9}},
		},
		{
			name: "top-1 rescues weak source",
			in:   List{{"A", "B", 0.9}, {"C", "A", 0.3}, {"C", "B", 0.25}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0.2, TopN: 1},
			want: List{{"A", "B", 0.9}, {"C", "A", 0.3}},
		},
		{
			name: "hard floor blocks rescue",
			in:   List{{"A", "B", 0.9}, {"C", "A", 0.15}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0.2, TopN: 1},
			want: List{{"A", "B", 0.9}},
		},
		{
			name: "top-n disabled",
			in:   List{{"A", "B", 0.9}, {"C", "A", 0.3}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0, TopN: 0},
			want: List{{"A", "B", 0.9}},
		},
		{
			name: "negative top-n disabled",
			in:   List{{"C", "A", 0.3}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0, TopN: -3},
			want: List{},
		},
		{
			name: "nan never kept",
			in:   List{{"A", "B", nan}, {"A", "C", 0.1}},
			p:    Params{SoftFloor: math.Inf(-1), HardFloor: math.Inf(-1), TopN: 5},
			want: List{{"A", "C", 0.1}},
		},
		{
			name: "hard floor above soft floor accepted",
			in:   List{{"A", "B", 0.6}, {"C", "D", 0.4}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0.8, TopN: 1},
			want: List{{"A", "B", 0.6}},
		},
		{
			name: "order preserved",
			in:   List{{"B", "A", 0.1}, {"A", "B", 0.9}, {"B", "C", 0.2}},
			p:    Params{SoftFloor: 0.5, HardFloor: 0, TopN: 1},
			want: List{{"A", "B", 0.9}, {"B", "C", 0.2}},
		},
		{
			name: "identical edges kept once",
			in:   List{{"A", "B", 0.9}, {"A", "B", 0.9}},
			p:    DefaultParams(),
			want: List{{"A", "B", 0.9}},
		},
		{
			name: "empty",
			in:   nil,
			p:    DefaultParams(),
			want: List{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.in, tt.p)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := List{{"A", "C", 0.3}, {"A", "B", 0.9}}
	orig := in.Clone()
	Filter(in, Params{SoftFloor: 0.5, TopN: 2})
	if !slices.Equal(in, orig) {
		t.Errorf("input modified: %v", in)
	}
}

func TestTopPerSource(t *testing.T) {
	in := List{
		{"A", "B", 0.2},
		{"A", "C", 0.7},
		{"X", "Y", 0.1},
		{"A", "D", 0.5},
		{"A", "E", 0.9},
		{"A", "F", 0.4},
		{"X", "Z", 0.05},
	}

	got := TopPerSource(in, 2, math.Inf(-1))
	want := List{{"A", "C", 0.7}, {"X", "Y", 0.1}, {"A", "E", 0.9}, {"X", "Z", 0.05}}
	if !slices.Equal(got, want) {
		t.Errorf("TopPerSource(2) = %v, want %v", got, want)
	}

	if got := TopPerSource(in, 2, math.Inf(-1)).From("A"); len(got) != 2 {
		t.Errorf("source A kept %d edges, want 2", len(got))
	}
}

func TestTopPerSourceTieBreak(t *testing.T) {
	in := List{{"A", "B", 0.5}, {"A", "C", 0.5}, {"A", "D", 0.5}}
	got := TopPerSource(in, 1, 0)
	if want := (List{{"A", "B", 0.5}}); !slices.Equal(got, want) {
		t.Errorf("tie break = %v, want %v", got, want)
	}
}

func TestBiggestPerSource(t *testing.T) {
	in := List{{"A", "B", -0.4}, {"A", "C", -0.2}, {"B", "A", 0.1}}
	got := BiggestPerSource(in)
	if want := (List{{"A", "C", -0.2}, {"B", "A", 0.1}}); !slices.Equal(got, want) {
		t.Errorf("BiggestPerSource() = %v, want %v", got, want)
	}
}

func TestAboveThreshold(t *testing.T) {
	in := List{{"A", "B", 0.5}, {"A", "C", 0.51}, {"B", "C", math.NaN()}}
	got := AboveThreshold(in, 0.5)
	if want := (List{{"A", "C", 0.51}}); !slices.Equal(got, want) {
		t.Errorf("AboveThreshold() = %v, want %v", got, want)
	}
}

func sampleList() List {
	return List{
		{"A", "B", 0.9}, {"A", "C", 0.45}, {"A", "D", 0.2}, {"A", "E", -0.3},
		{"B", "A", 0.9}, {"B", "C", 0.05}, {"B", "D", 0.35},
		{"C", "A", 0.45}, {"C", "B", 0.05}, {"C", "E", 0.6},
		{"D", "A", 0.2}, {"D", "B", 0.35},
		{"E", "A", -0.3}, {"E", "C", 0.6},
		{"F", "A", 0.01},
	}
}

func contains(l List, e Edge) bool { return slices.Contains(l, e) }

func TestFilterMonotoneInSoftFloor(t *testing.T) {
	in := sampleList()
	floors := []float64{0.8, 0.5, 0.3, 0.1, 0, -0.5}
	for k := 1; k < len(floors); k++ {
		hi := Filter(in, Params{SoftFloor: floors[k-1], HardFloor: 0.1, TopN: 1})
		lo := Filter(in, Params{SoftFloor: floors[k], HardFloor: 0.1, TopN: 1})
		for _, e := range hi {
			if !contains(lo, e) {
				t.Errorf("soft floor %v keeps %v but %v drops it", floors[k-1], e, floors[k])
			}
		}
	}
}

func TestFilterMonotoneInTopN(t *testing.T) {
	in := sampleList()
	for n := 0; n < 5; n++ {
		small := Filter(in, Params{SoftFloor: 0.7, HardFloor: 0, TopN: n})
		large := Filter(in, Params{SoftFloor: 0.7, HardFloor: 0, TopN: n + 1})
		for _, e := range small {
			if !contains(large, e) {
				t.Errorf("top_n %d keeps %v but %d drops it", n, e, n+1)
			}
		}
	}
}

func TestFilterNoIsolation(t *testing.T) {
	in := sampleList()
	p := Params{SoftFloor: 0.95, HardFloor: 0.0, TopN: 1}
	got := Filter(in, p)
	for _, src := range in.Sources() {
		hasCandidate := false
		for _, e := range in.From(src) {
			if e.Weight > p.HardFloor {
				hasCandidate = true
			}
		}
		if hasCandidate && len(got.From(src)) == 0 {
			t.Errorf("source %s isolated despite an edge above the hard floor", src)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"infinite", Params{SoftFloor: math.Inf(1), HardFloor: math.Inf(-1)}, false},
		{"nan soft", Params{SoftFloor: math.NaN()}, true},
		{"nan hard", Params{HardFloor: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
