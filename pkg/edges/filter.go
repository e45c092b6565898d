package edges

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidParams is returned by [Params.Validate] for floors that are not
// finite numbers.
var ErrInvalidParams = errors.New("invalid selection parameters")

// Params configures [Filter].
//
// HardFloor is expected to be at most SoftFloor; a larger value is accepted
// and simply makes Rule B stricter than Rule A.
type Params struct {
	SoftFloor float64 `json:"soft_floor" yaml:"soft_floor" toml:"soft_floor"`
	HardFloor float64 `json:"hard_floor" yaml:"hard_floor" toml:"hard_floor"`
	TopN      int     `json:"top_n" yaml:"top_n" toml:"top_n"`
}

// DefaultParams returns the default selection policy: keep edges above 0.5
// plus each character's single strongest positive edge.
func DefaultParams() Params {
	return Params{SoftFloor: 0.5, HardFloor: 0.0, TopN: 1}
}

// Validate rejects NaN floors. Infinite floors are allowed and turn the
// corresponding rule into "keep all" or "keep none".
func (p Params) Validate() error {
	if math.IsNaN(p.SoftFloor) {
		return fmt.Errorf("%w: soft floor is NaN", ErrInvalidParams)
	}
	if math.IsNaN(p.HardFloor) {
		return fmt.Errorf("%w: hard floor is NaN", ErrInvalidParams)
	}
	return nil
}

// Filter keeps the union of edges above p.SoftFloor and each source's
// p.TopN heaviest edges above p.HardFloor. A TopN of zero or less disables
// the per-source rule. The result keeps input order; an edge identical to an
// earlier kept edge is dropped. The input is not modified.
func Filter(l List, p Params) List {
	keep := make([]bool, len(l))
	for _, i := range aboveIndices(l, p.SoftFloor) {
		keep[i] = true
	}
	for _, i := range topIndices(l, p.TopN, p.HardFloor) {
		keep[i] = true
	}
	return collect(l, keep)
}

// AboveThreshold keeps every edge whose weight is strictly greater than t.
func AboveThreshold(l List, t float64) List {
	keep := make([]bool, len(l))
	for _, i := range aboveIndices(l, t) {
		keep[i] = true
	}
	return collect(l, keep)
}

// TopPerSource keeps, for each source, its n heaviest edges whose weight is
// strictly greater than hardFloor. Equal weights keep their input order.
func TopPerSource(l List, n int, hardFloor float64) List {
	keep := make([]bool, len(l))
	for _, i := range topIndices(l, n, hardFloor) {
		keep[i] = true
	}
	return collect(l, keep)
}

// BiggestPerSource keeps the single heaviest edge of every source.
//
// Deprecated: use TopPerSource(l, 1, math.Inf(-1)) or Filter.
func BiggestPerSource(l List) List {
	return TopPerSource(l, 1, math.Inf(-1))
}

func aboveIndices(l List, t float64) []int {
	var out []int
	for i, e := range l {
		// NaN compares false.
		if e.Weight > t {
			out = append(out, i)
		}
	}
	return out
}

func topIndices(l List, n int, hardFloor float64) []int {
	if n <= 0 {
		return nil
	}
	bySource := make(map[string][]int)
	var order []string
	for i, e := range l {
		if !(e.Weight > hardFloor) {
			continue
		}
		if _, ok := bySource[e.Source]; !ok {
			order = append(order, e.Source)
		}
		bySource[e.Source] = append(bySource[e.Source], i)
	}

	var out []int
	for _, src := range order {
		idx := bySource[src]
		slices.SortStableFunc(idx, func(a, b int) int {
			switch {
			case l[a].Weight > l[b].Weight:
				return -1
			case l[a].Weight < l[b].Weight:
				return 1
			}
			return 0
		})
		out = append(out, idx[:min(n, len(idx))]...)
	}
	return out
}

func collect(l List, keep []bool) List {
	seen := make(map[Edge]bool)
	out := List{}
	for i, e := range l {
		if !keep[i] || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
