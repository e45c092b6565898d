// Package pipeline provides the edge-construction pipeline for comicweb.
//
// This package implements the complete table → edges → graph → render flow
// used by both the CLI and the API. Centralizing it keeps caching, logging
// and validation identical across entry points.
//
// # Architecture
//
// The pipeline runs these stages in order:
//
//  1. Filter: drop characters below Options.MinAppearances
//  2. Weight: turn appearance kinds into numbers
//  3. Correlate: Pearson correlation per character pair (correlation mode only)
//  4. Candidates: one edge per ordered pair with a defined weight
//  5. Select: keep the union of the soft-floor and top-N rules
//  6. Assemble: collapse the selected edges into an undirected graph
//
// Stages 2 to 5 are cached together: the selected edge list is stored under
// a key derived from the filtered table and every option that affects it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"csv", "svg"}
//	result, err := runner.Execute(ctx, table, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	csv := result.Artifacts["csv"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/comicweb/pkg/cache"
	"github.com/matzehuels/comicweb/pkg/config"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/errors"
	"github.com/matzehuels/comicweb/pkg/render/nodelink"
	"github.com/matzehuels/comicweb/pkg/weight"
)

// =============================================================================
// Format Constants
// =============================================================================

// Output formats.
const (
	FormatCSV   = "csv"   // selected edge list
	FormatJSON  = "json"  // selected edge list
	FormatGraph = "graph" // node-link document of the assembled graph
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatCSV, FormatJSON, FormatGraph, FormatDOT, FormatSVG, FormatPNG}

// FormatExtensions maps formats to output file extensions.
var FormatExtensions = map[string]string{
	FormatCSV:   ".csv",
	FormatJSON:  ".json",
	FormatGraph: ".graph.json",
	FormatDOT:   ".dot",
	FormatSVG:   ".svg",
	FormatPNG:   ".png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests; decode into
// [DefaultOptions] so that omitted fields keep their defaults.
type Options struct {
	// Weighting
	Weights       map[string]float64 `json:"weights,omitempty"`
	StrictWeights bool               `json:"strict_weights,omitempty"`

	// Edge construction
	EdgeWeight     string       `json:"edge_weight,omitempty"` // "correlation" or "coappearance"
	Selection      edges.Params `json:"selection"`
	MinAppearances int          `json:"min_appearances,omitempty"`
	Refresh        bool         `json:"refresh,omitempty"`

	// Rendering
	Formats  []string `json:"formats,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns the options of [config.Default].
func DefaultOptions() Options {
	return FromConfig(config.Default())
}

// FromConfig converts a loaded configuration into pipeline options.
func FromConfig(c config.Config) Options {
	w := make(map[string]float64, len(c.Weights))
	for k, v := range c.Weights {
		w[k] = v
	}
	return Options{
		Weights:        w,
		StrictWeights:  c.StrictWeights,
		EdgeWeight:     c.EdgeWeight,
		Selection:      c.Selection,
		MinAppearances: c.MinAppearances,
		Engine:         c.Render.Engine,
	}
}

// Scheme returns the weighting scheme described by Weights.
func (o *Options) Scheme() weight.Scheme {
	return config.Config{Weights: o.Weights}.Scheme()
}

// SetDefaults fills fields left empty.
func (o *Options) SetDefaults() {
	if o.Weights == nil {
		o.Weights = DefaultOptions().Weights
	}
	if o.EdgeWeight == "" {
		o.EdgeWeight = config.EdgeWeightCorrelation
	}
	if o.Engine == "" {
		o.Engine = nodelink.DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every option. Errors carry
// [errors.ErrCodeInvalidInput] or a more specific code.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := o.Scheme().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "weights")
	}
	switch o.EdgeWeight {
	case config.EdgeWeightCorrelation, config.EdgeWeightCoAppearance:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "edge_weight must be %q or %q, got %q",
			config.EdgeWeightCorrelation, config.EdgeWeightCoAppearance, o.EdgeWeight)
	}
	if err := o.Selection.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "selection")
	}
	if o.Selection.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top_n must be >= 0, got %d", o.Selection.TopN)
	}
	if o.MinAppearances < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_appearances must be >= 0, got %d", o.MinAppearances)
	}
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	if err := nodelink.ValidateEngine(o.Engine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidEngine, err, "render engine")
	}
	return nil
}

// EdgesKeyOpts returns the cache key options for the selected edge list.
func (o *Options) EdgesKeyOpts() cache.EdgesKeyOpts {
	return cache.EdgesKeyOpts{
		Weights:        o.Weights,
		Strict:         o.StrictWeights,
		EdgeWeight:     o.EdgeWeight,
		MinAppearances: o.MinAppearances,
		SoftFloor:      keyFloat(o.Selection.SoftFloor),
		HardFloor:      keyFloat(o.Selection.HardFloor),
		TopN:           o.Selection.TopN,
	}
}

// RenderKeyOpts returns the cache key options for one rendered format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: format, Engine: o.Engine, Detailed: o.Detailed}
}

// keyFloat maps infinite floors to finite sentinels; JSON cannot encode Inf.
func keyFloat(f float64) float64 {
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}

// =============================================================================
// Results
// =============================================================================

// Stats contains pipeline execution statistics.
type Stats struct {
	Characters int `json:"characters"` // characters after filtering
	Dropped    int `json:"dropped"`    // characters removed by min_appearances
	Issues     int `json:"issues"`
	Candidates int `json:"candidates"` // candidate edges (0 on cache hit)
	Edges      int `json:"edges"`      // selected directed edges
	Nodes      int `json:"nodes"`      // graph nodes
	Links      int `json:"links"`      // undirected graph edges
	Isolated   int `json:"isolated"`

	FilterTime    time.Duration `json:"filter_ns"`
	WeightTime    time.Duration `json:"weight_ns"`
	CorrelateTime time.Duration `json:"correlate_ns"`
	CandidateTime time.Duration `json:"candidates_ns"`
	SelectTime    time.Duration `json:"select_ns"`
	AssembleTime  time.Duration `json:"assemble_ns"`
	RenderTime    time.Duration `json:"render_ns"`
}

// CacheInfo tracks cache hits for the cached stages.
type CacheInfo struct {
	EdgesHit  bool `json:"edges_hit"`  // selected edges came from cache
	RenderHit bool `json:"render_hit"` // all artifacts came from cache
}
