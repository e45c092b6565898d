package nodelink

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/graph"
)

func sampleGraph() *graph.Graph {
	return graph.FromEdges(edges.List{
		{Source: "Cyclops", Target: "Jean Grey", Weight: 0.9},
		{Source: "Cyclops", Target: "Beast", Weight: 0.3},
	}, nil)
}

func TestToDOTBasic(t *testing.T) {
	dot := ToDOT(sampleGraph(), DefaultOptions())

	for _, want := range []string{
		"graph G {",
		`"Cyclops" [label="Cyclops"]`,
		`"Cyclops" -- "Jean Grey" [penwidth=6.00`,
		`"Cyclops" -- "Beast" [penwidth=1.00`,
		`tooltip="0.900"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := sampleGraph()
	g.SetMeta("appearances", map[string]any{"Cyclops": 12})

	dot := ToDOT(g, Options{Detailed: true, MinPenWidth: 1, MaxPenWidth: 6})

	for _, want := range []string{"degree: 2", "strength: 1.20", "appearances: 12"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed missing %q", want)
		}
	}
}

func TestPenWidth(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		w, lo, hi, want float64
	}{
		{0.5, 0, 1, 3.5},
		{0, 0, 1, 1},
		{1, 0, 1, 6},
		{0.7, 0.7, 0.7, 6},
	}
	for _, tt := range tests {
		if got := penWidth(tt.w, tt.lo, tt.hi, opts); got != tt.want {
			t.Errorf("penWidth(%v, %v, %v) = %v, want %v", tt.w, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestValidateEngine(t *testing.T) {
	if err := ValidateEngine("neato"); err != nil {
		t.Errorf("neato: %v", err)
	}
	if err := ValidateEngine("spring"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("spring: err = %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if out := normalizeViewBox([]byte("<svg>")); string(out) != "<svg>" {
		t.Errorf("without viewBox = %s", out)
	}
}

func TestToDOTNodeSizes(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]map[string]any
		keys []string
		want []string
		not  []string
	}{
		{
			name: "no keys",
			meta: map[string]map[string]any{"appearances": {"Cyclops": 10}},
			want: []string{`"Cyclops" [label="Cyclops"];`},
		},
		{
			name: "scaled by summed counts",
			meta: map[string]map[string]any{
				"appearances":       {"Cyclops": 10, "Jean Grey": 4, "Beast": 1},
				"minor_appearances": {"Cyclops": 2, "Beast": 1.0},
			},
			keys: []string{"appearances", "minor_appearances"},
			want: []string{
				`"Cyclops" [label="Cyclops", fontsize=32.0];`,
				`"Jean Grey" [label="Jean Grey", fontsize=17.6];`,
				`"Beast" [label="Beast", fontsize=14.0];`,
			},
		},
		{
			name: "nodes without metadata keep the default",
			meta: map[string]map[string]any{"appearances": {"Cyclops": 3}},
			keys: []string{"appearances"},
			want: []string{`"Cyclops" [label="Cyclops", fontsize=32.0];`, `"Beast" [label="Beast"];`},
			not:  []string{`"Beast" [label="Beast", fontsize`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sampleGraph()
			for k, v := range tt.meta {
				g.SetMeta(k, v)
			}
			opts := DefaultOptions()
			opts.SizeKeys = tt.keys
			dot := ToDOT(g, opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("ToDOT() missing %q\n%s", w, dot)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(dot, n) {
					t.Errorf("ToDOT() contains %q", n)
				}
			}
		})
	}
}
