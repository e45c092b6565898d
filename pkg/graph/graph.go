package graph

import (
	"errors"
	"slices"

	"github.com/matzehuels/comicweb/pkg/edges"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint has not
	// been added.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same character. Character networks never link a character to itself.
	ErrSelfLoop = errors.New("self loop")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil once stored in a Graph.
type Metadata map[string]any

// Node is a character in the network.
type Node struct {
	ID   string
	Meta Metadata
}

// Edge is an undirected weighted link. From and To keep the orientation in
// which the pair was first added.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Other returns the endpoint of e that is not id.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

type pairKey struct{ a, b string }

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Graph is an undirected weighted graph of characters. Nodes and edges are
// kept in insertion order so that output is deterministic.
//
// The zero value is not usable; use [New] or [FromEdges].
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	index map[pairKey]int
	adj   map[string][]int
	meta  Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes: make(map[string]*Node),
		index: make(map[pairKey]int),
		adj:   make(map[string][]int),
		meta:  meta,
	}
}

// FromEdges builds a graph from a directed edge list. Edge endpoints become
// nodes in first-seen order. Reciprocal edges merge into one undirected edge
// carrying the larger weight; self edges are ignored.
func FromEdges(l edges.List, meta Metadata) *Graph {
	g := New(meta)
	for _, e := range l {
		if e.Source == e.Target || !e.Defined() {
			continue
		}
		g.ensureNode(e.Source)
		g.ensureNode(e.Target)
		_ = g.AddEdge(e.Source, e.Target, e.Weight)
	}
	return g
}

func (g *Graph) ensureNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		_ = g.AddNode(Node{ID: id})
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node. Its Meta is initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge links two existing nodes. If the pair is already linked in either
// direction, the stored weight becomes the larger of the two.
func (g *Graph) AddEdge(from, to string, w float64) error {
	if from == to {
		return ErrSelfLoop
	}
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownNode
	}
	k := keyOf(from, to)
	if i, ok := g.index[k]; ok {
		g.edges[i].Weight = max(g.edges[i].Weight, w)
		return nil
	}
	g.index[k] = len(g.edges)
	g.adj[from] = append(g.adj[from], len(g.edges))
	g.adj[to] = append(g.adj[to], len(g.edges))
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: w})
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Weight returns the weight of the edge between a and b in either direction.
func (g *Graph) Weight(a, b string) (float64, bool) {
	i, ok := g.index[keyOf(a, b)]
	if !ok {
		return 0, false
	}
	return g.edges[i].Weight, true
}

// HasEdge reports whether a and b are linked.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.index[keyOf(a, b)]
	return ok
}

// Neighbors returns the characters linked to id, in edge insertion order.
func (g *Graph) Neighbors(id string) []string {
	idx := g.adj[id]
	out := make([]string, len(idx))
	for i, ei := range idx {
		out[i] = g.edges[ei].Other(id)
	}
	return out
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Strength returns the sum of the weights of the edges incident to id.
func (g *Graph) Strength(id string) float64 {
	var s float64
	for _, ei := range g.adj[id] {
		s += g.edges[ei].Weight
	}
	return s
}

// Isolated returns the names, in the given order, that are not nodes of g.
func (g *Graph) Isolated(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := g.nodes[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// SetMeta sets key on every node found in values.
func (g *Graph) SetMeta(key string, values map[string]any) {
	for id, v := range values {
		if n, ok := g.nodes[id]; ok {
			n.Meta[key] = v
		}
	}
}

// EdgeList returns the graph as a directed edge list with one entry per
// undirected edge, oriented as first added.
func (g *Graph) EdgeList() edges.List {
	out := make(edges.List, len(g.edges))
	for i, e := range g.edges {
		out[i] = edges.Edge{Source: e.From, Target: e.To, Weight: e.Weight}
	}
	return out
}
