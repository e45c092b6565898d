package cache

import (
	"maps"
	"slices"
)

// Keyer derives cache keys for pipeline results.
type Keyer interface {
	// EdgesKey addresses a selected edge list computed from a table.
	EdgesKey(tableHash string, opts EdgesKeyOpts) string
	// RenderKey addresses a rendered artifact of a graph.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// EdgesKeyOpts lists every option that changes the selected edges.
type EdgesKeyOpts struct {
	Weights        map[string]float64 `json:"weights"`
	Strict         bool               `json:"strict"`
	EdgeWeight     string             `json:"edge_weight"`
	MinAppearances int                `json:"min_appearances"`
	SoftFloor      float64            `json:"soft_floor"`
	HardFloor      float64            `json:"hard_floor"`
	TopN           int                `json:"top_n"`
}

// RenderKeyOpts lists every option that changes a rendered artifact.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Engine   string `json:"engine"`
	Detailed bool   `json:"detailed"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// EdgesKey hashes the table hash with the options. Weights are hashed as
// sorted pairs so map order never changes the key.
func (DefaultKeyer) EdgesKey(tableHash string, opts EdgesKeyOpts) string {
	weights := make([][2]any, 0, len(opts.Weights))
	for _, k := range slices.Sorted(maps.Keys(opts.Weights)) {
		weights = append(weights, [2]any{k, opts.Weights[k]})
	}
	opts.Weights = nil
	return hashKey("edges", tableHash, weights, opts)
}

// RenderKey hashes the graph hash with the render options.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}

// ScopedKeyer prefixes every key produced by an inner keyer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// EdgesKey returns the prefixed edges key.
func (k *ScopedKeyer) EdgesKey(tableHash string, opts EdgesKeyOpts) string {
	return k.prefix + k.inner.EdgesKey(tableHash, opts)
}

// RenderKey returns the prefixed render key.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
