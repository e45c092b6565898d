package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Wire Types
// =============================================================================

// Document is the node-link serialization of a [Graph].
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
	Meta  Metadata       `json:"meta,omitempty"`
}

// DocumentNode is a serialized node with its derived degree and strength.
type DocumentNode struct {
	ID       string   `json:"id"`
	Degree   int      `json:"degree"`
	Strength float64  `json:"strength"`
	Meta     Metadata `json:"meta,omitempty"`
}

// DocumentEdge is a serialized undirected edge.
type DocumentEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// =============================================================================
// Graph ↔ Document Conversion
// =============================================================================

// Export converts g to its wire format. Node and edge order follow insertion
// order.
func (g *Graph) Export() Document {
	doc := Document{
		Nodes: make([]DocumentNode, 0, g.NodeCount()),
		Edges: make([]DocumentEdge, 0, g.EdgeCount()),
		Meta:  copyMeta(g.meta),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, DocumentNode{
			ID:       n.ID,
			Degree:   g.Degree(n.ID),
			Strength: g.Strength(n.ID),
			Meta:     copyMeta(n.Meta),
		})
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, DocumentEdge{Source: e.From, Target: e.To, Weight: e.Weight})
	}
	return doc
}

// Import rebuilds a graph from its wire format. Degree and strength are
// recomputed from the edges.
func Import(doc Document) (*Graph, error) {
	g := New(copyMeta(doc.Meta))
	for _, n := range doc.Nodes {
		if err := g.AddNode(Node{ID: n.ID, Meta: copyMeta(n.Meta)}); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("add edge %s–%s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

// copyMeta returns a shallow copy, or nil for an empty map.
func copyMeta(m Metadata) Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts g to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes g as indented JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Export()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes g as JSON to path.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON document from r into a Graph.
func Read(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Import(doc)
}

// ReadFile reads a JSON graph document from path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
