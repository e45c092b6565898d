// Package nodelink renders character networks as node-link diagrams.
//
// # Overview
//
// Characters become ellipses and every undirected edge becomes a line whose
// thickness grows with its weight. Graphviz computes the layout; the module
// itself never positions nodes.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.DefaultOptions())
//	svg, err := nodelink.RenderSVG(ctx, dot, "neato")
//	png, err := nodelink.RenderPNG(ctx, dot, "neato")
//
// # Engines
//
// Force-directed engines ("neato", "fdp", "sfdp") suit social networks best;
// "circo", "twopi" and "dot" are accepted as well. See [Engines].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which bundles Graphviz as
// WebAssembly, so no system installation is needed for SVG or PNG output.
package nodelink
