package edges

import (
	"math"
	"slices"
)

// Edge is a directed, weighted link between two distinct characters.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Defined reports whether the edge weight is a usable number.
func (e Edge) Defined() bool { return !math.IsNaN(e.Weight) }

// Reverse returns the edge with source and target swapped.
func (e Edge) Reverse() Edge { return Edge{Source: e.Target, Target: e.Source, Weight: e.Weight} }

// List is an ordered sequence of edges. Both directions of a pair may appear.
type List []Edge

// Clone returns a copy of l.
func (l List) Clone() List { return slices.Clone(l) }

// Sources returns the distinct source names in first-seen order.
func (l List) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range l {
		if !seen[e.Source] {
			seen[e.Source] = true
			out = append(out, e.Source)
		}
	}
	return out
}

// Nodes returns every distinct endpoint in first-seen order.
func (l List) Nodes() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, e := range l {
		add(e.Source)
		add(e.Target)
	}
	return out
}

// From returns the edges whose source is name, in list order.
func (l List) From(name string) List {
	var out List
	for _, e := range l {
		if e.Source == name {
			out = append(out, e)
		}
	}
	return out
}

// WeightRange returns the smallest and largest defined weights. Both are 0
// for a list without defined weights.
func (l List) WeightRange() (lo, hi float64) {
	first := true
	for _, e := range l {
		if !e.Defined() {
			continue
		}
		if first {
			lo, hi, first = e.Weight, e.Weight, false
			continue
		}
		lo = min(lo, e.Weight)
		hi = max(hi, e.Weight)
	}
	return lo, hi
}

// SortByWeight returns a copy ordered by descending weight, ties kept in
// list order.
func (l List) SortByWeight() List {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Edge) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	return out
}
