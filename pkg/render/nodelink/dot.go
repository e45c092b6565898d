package nodelink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/comicweb/pkg/graph"
)

// Engines lists the accepted Graphviz layout engines.
var Engines = []string{"neato", "fdp", "sfdp", "circo", "twopi", "dot"}

// DefaultEngine is the layout engine used when none is configured.
const DefaultEngine = "neato"

// ErrUnknownEngine is returned for a layout engine not in [Engines].
var ErrUnknownEngine = errors.New("unknown layout engine")

// ValidateEngine checks that engine is one of [Engines].
func ValidateEngine(engine string) error {
	if !slices.Contains(Engines, engine) {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	return nil
}

// Options configures diagram generation.
type Options struct {
	// Detailed adds degree, strength and node metadata to labels.
	Detailed bool
	// MinPenWidth and MaxPenWidth bound the line width of the weakest and
	// strongest edge.
	MinPenWidth float64
	MaxPenWidth float64
	// SizeKeys names numeric node metadata whose sum sets a node's font
	// size, scaled between MinFontSize and MaxFontSize. Nodes without any
	// of the keys keep the default size.
	SizeKeys    []string
	MinFontSize float64
	MaxFontSize float64
}

// DefaultOptions returns compact labels, edge widths from 1 to 6 and font
// sizes from 14 to 32.
func DefaultOptions() Options {
	return Options{MinPenWidth: 1, MaxPenWidth: 6, MinFontSize: 14, MaxFontSize: 32}
}

// ToDOT converts a character graph to an undirected Graphviz DOT document.
// Edge widths are scaled linearly between the smallest and largest weight.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=\"#00000080\"];\n")
	buf.WriteString("\n")

	sizes := nodeSizes(g, opts.SizeKeys)
	var sizeLo, sizeHi float64
	for i, v := range slices.Sorted(maps.Values(sizes)) {
		if i == 0 {
			sizeLo = v
		}
		sizeHi = v
	}
	for _, n := range g.Nodes() {
		label := fmtLabel(g, n, opts.Detailed)
		size, ok := sizes[n.ID]
		if !ok {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, label)
			continue
		}
		fs := scale(size, sizeLo, sizeHi, opts.MinFontSize, opts.MaxFontSize)
		fmt.Fprintf(&buf, "  %q [label=%q, fontsize=%s];\n", n.ID, label, strconv.FormatFloat(fs, 'f', 1, 64))
	}

	buf.WriteString("\n")
	lo, hi := g.EdgeList().WeightRange()
	for _, e := range g.Edges() {
		pw := penWidth(e.Weight, lo, hi, opts)
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%s, tooltip=%q];\n",
			e.From, e.To, strconv.FormatFloat(pw, 'f', 2, 64), strconv.FormatFloat(e.Weight, 'f', 3, 64))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, n *graph.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	parts := []string{
		fmt.Sprintf("degree: %d", g.Degree(n.ID)),
		fmt.Sprintf("strength: %.2f", g.Strength(n.ID)),
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func penWidth(w, lo, hi float64, opts Options) float64 {
	return scale(w, lo, hi, opts.MinPenWidth, opts.MaxPenWidth)
}

// scale maps v from [lo, hi] linearly onto [outLo, outHi]; a degenerate
// input range maps to outHi.
func scale(v, lo, hi, outLo, outHi float64) float64 {
	if hi <= lo {
		return outHi
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

// nodeSizes sums the numeric metadata under keys for every node that has at
// least one of them.
func nodeSizes(g *graph.Graph, keys []string) map[string]float64 {
	sizes := map[string]float64{}
	if len(keys) == 0 {
		return sizes
	}
	for _, n := range g.Nodes() {
		var total float64
		found := false
		for _, k := range keys {
			if v, ok := number(n.Meta[k]); ok {
				total += v
				found = true
			}
		}
		if found {
			sizes[n.ID] = total
		}
	}
	return sizes
}

// number converts the numeric types metadata holds in memory (int) and after
// a JSON round trip (float64).
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// RenderSVG lays out and renders a DOT document as SVG.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	out, err := render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out and renders a DOT document as PNG.
func RenderPNG(ctx context.Context, dot, engine string) ([]byte, error) {
	return render(ctx, dot, engine, graphviz.PNG)
}

func render(ctx context.Context, dot, engine string, format graphviz.Format) ([]byte, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	if err := ValidateEngine(engine); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the fixed point-size root element with a
// scalable one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
