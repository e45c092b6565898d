package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/cache"
	"github.com/matzehuels/comicweb/pkg/config"
	"github.com/matzehuels/comicweb/pkg/correlation"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/errors"
	"github.com/matzehuels/comicweb/pkg/graph"
	tableio "github.com/matzehuels/comicweb/pkg/io"
	"github.com/matzehuels/comicweb/pkg/observability"
	"github.com/matzehuels/comicweb/pkg/weight"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Table is the appearance table after filtering.
	Table *appearance.Table

	// Summary holds per-character appearance counts of Table.
	Summary []appearance.Stats

	// Weights, Correlation and Candidates are the intermediate results.
	// They are nil when the selected edges came from the cache; Correlation
	// is also nil for the co-appearance method.
	Weights     *weight.Matrix
	Correlation *correlation.Matrix
	Candidates  edges.List

	// Edges is the selected directed edge list.
	Edges edges.List

	// Graph is the undirected character network.
	Graph *graph.Graph

	// Isolated lists characters of Table that have no selected edge.
	Isolated []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Execute runs the complete pipeline on t. The input table is not modified.
func (r *Runner) Execute(ctx context.Context, t *appearance.Table, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	logger := opts.Logger

	res := &Result{RunID: uuid.NewString(), Artifacts: map[string][]byte{}}
	logger = logger.With("run", res.RunID[:8])
	opts.Logger = logger

	// Stage 1: Filter
	err := r.stage(ctx, "filter", t.Len(), &res.Stats.FilterTime, func() (int, error) {
		res.Table = FilterTable(t, opts.MinAppearances)
		return res.Table.Len(), nil
	})
	if err != nil {
		return nil, err
	}
	res.Summary = appearance.Summarize(res.Table)
	res.Stats.Characters = res.Table.Len()
	res.Stats.Dropped = t.Len() - res.Table.Len()
	res.Stats.Issues = res.Table.IssueCount()
	logger.Info("loaded table",
		"characters", res.Stats.Characters,
		"issues", res.Stats.Issues,
		"dropped", res.Stats.Dropped)

	// Stages 2-5: cached edge selection
	selected, hit, err := r.SelectWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	res.Edges = selected
	res.Stats.Edges = len(selected)
	res.CacheInfo.EdgesHit = hit
	logger.Info("selected edges",
		"candidates", res.Stats.Candidates,
		"edges", res.Stats.Edges,
		"cached", hit)

	// Stage 6: Assemble
	err = r.stage(ctx, "assemble", len(selected), &res.Stats.AssembleTime, func() (int, error) {
		res.Graph = Assemble(selected, res.Summary, graph.Metadata{"edge_weight": opts.EdgeWeight})
		return res.Graph.EdgeCount(), nil
	})
	if err != nil {
		return nil, err
	}
	res.Isolated = res.Graph.Isolated(res.Table.Characters())
	res.Stats.Nodes = res.Graph.NodeCount()
	res.Stats.Links = res.Graph.EdgeCount()
	res.Stats.Isolated = len(res.Isolated)
	if len(res.Isolated) > 0 {
		logger.Warn("isolated characters", "count", len(res.Isolated))
	}

	if len(opts.Formats) == 0 {
		return res, nil
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res.Edges, res.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = renderHit
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// SelectWithCacheInfo runs weighting, candidate construction and selection
// on res.Table, or loads the selected edges from the cache. Intermediate
// results and their stats are stored in res.
func (r *Runner) SelectWithCacheInfo(ctx context.Context, res *Result, opts Options) (edges.List, bool, error) {
	r.applyLogger(&opts)
	logger := opts.Logger

	tableHash, err := cache.HashJSON(tableio.NewTableDocument(res.Table))
	if err != nil {
		return nil, false, fmt.Errorf("hash table: %w", err)
	}
	key := r.Keyer.EdgesKey(tableHash, opts.EdgesKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := tableio.ReadEdgesJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "edges")
				return l, true, nil
			}
		} else if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "edges")

	err = r.stage(ctx, "weight", res.Table.Len(), &res.Stats.WeightTime, func() (int, error) {
		res.Weights, err = Weigh(res.Table, opts)
		if err != nil {
			return 0, err
		}
		return res.Weights.Rows(), nil
	})
	if err != nil {
		return nil, false, err
	}

	if opts.EdgeWeight != config.EdgeWeightCoAppearance {
		err = r.stage(ctx, "correlate", res.Weights.Rows(), &res.Stats.CorrelateTime, func() (int, error) {
			res.Correlation = Correlate(res.Weights, opts.EdgeWeight)
			return res.Correlation.Len(), nil
		})
		if err != nil {
			return nil, false, err
		}
		if n := res.Correlation.UndefinedCount(); n > 0 {
			logger.Debug("undefined correlations dropped", "pairs", n)
		}
	}

	err = r.stage(ctx, "candidates", res.Weights.Rows(), &res.Stats.CandidateTime, func() (int, error) {
		res.Candidates = Candidates(res.Weights, res.Correlation)
		return len(res.Candidates), nil
	})
	if err != nil {
		return nil, false, err
	}
	res.Stats.Candidates = len(res.Candidates)

	var selected edges.List
	err = r.stage(ctx, "select", len(res.Candidates), &res.Stats.SelectTime, func() (int, error) {
		selected = edges.Filter(res.Candidates, opts.Selection)
		return len(selected), nil
	})
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := tableio.WriteEdgesJSON(selected, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.EdgesTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "edges", buf.Len())
		}
	}
	return selected, false, nil
}

// stage runs fn as a named pipeline stage: it checks for cancellation,
// reports hooks, and records the duration in d.
func (r *Runner) stage(ctx context.Context, name string, size int, d *time.Duration, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", name)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name, size)
	start := time.Now()
	count, err := fn()
	*d = time.Since(start)
	hooks.OnStageComplete(ctx, name, count, *d, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
