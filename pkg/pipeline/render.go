package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/comicweb/pkg/cache"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/graph"
	tableio "github.com/matzehuels/comicweb/pkg/io"
	"github.com/matzehuels/comicweb/pkg/observability"
	"github.com/matzehuels/comicweb/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats without
// caching. If g is nil it is assembled from selected.
func Render(ctx context.Context, selected edges.List, g *graph.Graph, opts Options) (map[string][]byte, error) {
	if g == nil {
		g = graph.FromEdges(selected, nil)
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, format, selected, g, &dot, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderFormat produces one artifact. The DOT source is generated at most
// once per call of [Render] and shared through dot.
func renderFormat(ctx context.Context, format string, selected edges.List, g *graph.Graph, dot *string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := tableio.WriteEdgesCSV(selected, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if err := tableio.WriteEdgesJSON(selected, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatGraph:
		return graph.Marshal(g)
	}

	if *dot == "" {
		nopts := nodelink.DefaultOptions()
		nopts.Detailed = opts.Detailed
		nopts.SizeKeys = []string{MetaAppearances, MetaMinorAppearances}
		*dot = nodelink.ToDOT(g, nopts)
	}
	switch format {
	case FormatDOT:
		return []byte(*dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, *dot, opts.Engine)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, *dot, opts.Engine)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// RenderWithCacheInfo renders every requested format, serving each artifact
// from the cache when possible. The boolean reports whether all artifacts
// were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, selected edges.List, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if g == nil {
		g = graph.FromEdges(selected, nil)
	}
	r.applyLogger(&opts)

	graphHash, err := renderHash(selected, g)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(graphHash, opts.RenderKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "render")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "render")
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		sub := opts
		sub.Formats = missing
		rendered, err := Render(ctx, selected, g, sub)
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		for format, data := range rendered {
			artifacts[format] = data
			key := r.Keyer.RenderKey(graphHash, opts.RenderKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.RenderTTL); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
		return artifacts, false, nil
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, len(opts.Formats) > 0, nil
}

// Render renders with caching and discards the cache information.
func (r *Runner) Render(ctx context.Context, selected edges.List, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, selected, g, opts)
	return artifacts, err
}

// renderHash identifies the render input: the directed edge list for the
// edge formats and the exported graph, including node metadata, for the rest.
func renderHash(selected edges.List, g *graph.Graph) (string, error) {
	h, err := cache.HashJSON(struct {
		Edges edges.List     `json:"edges"`
		Graph graph.Document `json:"graph"`
	}{selected, g.Export()})
	if err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}
	return h, nil
}
