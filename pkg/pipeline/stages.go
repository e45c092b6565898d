package pipeline

import (
	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/config"
	"github.com/matzehuels/comicweb/pkg/correlation"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/errors"
	"github.com/matzehuels/comicweb/pkg/graph"
	"github.com/matzehuels/comicweb/pkg/weight"
)

// Node metadata keys set by [Assemble].
const (
	MetaAppearances      = "appearances"
	MetaMinorAppearances = "minor_appearances"
	MetaMentions         = "mentions"
)

// FilterTable drops characters with fewer than min full appearances.
// A min of zero or less returns t unchanged.
func FilterTable(t *appearance.Table, min int) *appearance.Table {
	if min <= 0 {
		return t
	}
	return appearance.KeepFrequent(t, min)
}

// Weigh applies the options' weighting scheme to t.
func Weigh(t *appearance.Table, opts Options) (*weight.Matrix, error) {
	var wopts []weight.Option
	if opts.StrictWeights {
		wopts = append(wopts, weight.WithStrict())
	}
	m, err := weight.Apply(t, opts.Scheme(), wopts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "weight table")
	}
	return m, nil
}

// Correlate returns the Pearson matrix of w for the correlation method and
// nil for co-appearance, which needs no correlation.
func Correlate(w *weight.Matrix, method string) *correlation.Matrix {
	if method == config.EdgeWeightCoAppearance {
		return nil
	}
	return correlation.Pearson(w)
}

// Candidates builds the candidate edge list: from the correlation matrix m
// when present, otherwise from co-appearance weights of w.
func Candidates(w *weight.Matrix, m *correlation.Matrix) edges.List {
	if m != nil {
		return edges.FromCorrelation(m)
	}
	return edges.FromCoAppearance(w)
}

// Assemble builds the undirected graph from the selected edges and attaches
// per-character appearance counts from stats.
func Assemble(selected edges.List, stats []appearance.Stats, meta graph.Metadata) *graph.Graph {
	g := graph.FromEdges(selected, meta)
	apps := make(map[string]any, len(stats))
	minor := make(map[string]any, len(stats))
	mentions := make(map[string]any, len(stats))
	for _, s := range stats {
		apps[s.Name] = s.Appearances
		minor[s.Name] = s.MinorAppearances
		mentions[s.Name] = s.Mentions
	}
	g.SetMeta(MetaAppearances, apps)
	g.SetMeta(MetaMinorAppearances, minor)
	g.SetMeta(MetaMentions, mentions)
	return g
}
