// Package weight turns categorical appearance kinds into numeric strengths.
//
// A [Scheme] maps each [appearance.Kind] to a non-negative weight and [Apply]
// uses it to convert an [appearance.Table] into a [Matrix] of the same shape.
// The character names are carried over unchanged; only the cells are weighted.
//
// Labels the scheme does not list, and absent cells, weigh 0.0. Pass
// [WithStrict] to reject labels the scheme does not cover instead.
package weight

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/comicweb/pkg/appearance"
)

var (
	// ErrInvalidWeight is returned when a scheme contains a negative, NaN or
	// infinite weight.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")

	// ErrUnknownKind is returned in strict mode when the table contains a label
	// the scheme does not list.
	ErrUnknownKind = errors.New("appearance kind missing from weight scheme")
)

// Scheme maps appearance kinds to weights.
type Scheme map[appearance.Kind]float64

// DefaultScheme returns the canonical weights: a full appearance counts 1.0, a
// minor appearance 0.5, a mention 0.1 and an invocation nothing.
func DefaultScheme() Scheme {
	return Scheme{
		appearance.Appearances:      1.0,
		appearance.MinorAppearances: 0.5,
		appearance.Mentions:         0.1,
		appearance.Invocations:      0.0,
	}
}

// Validate checks that every weight is finite and non-negative.
func (s Scheme) Validate() error {
	for _, k := range slices.Sorted(maps.Keys(s)) {
		w := s[k]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("%w: %q = %v", ErrInvalidWeight, k, w)
		}
	}
	return nil
}

// Weight returns the weight for k. Absent cells and unlisted labels weigh 0.
func (s Scheme) Weight(k appearance.Kind) float64 {
	if k.IsAbsent() {
		return 0
	}
	return s[k]
}

// Clone returns a copy of s.
func (s Scheme) Clone() Scheme { return maps.Clone(s) }

// Option configures [Apply].
type Option func(*applyConfig)

type applyConfig struct {
	strict bool
}

// WithStrict makes [Apply] fail with [ErrUnknownKind] when the table contains
// a label that the scheme does not list.
func WithStrict() Option {
	return func(c *applyConfig) { c.strict = true }
}

// Apply weights every cell of t with s and returns a new matrix.
// The input table is not modified.
func Apply(t *appearance.Table, s Scheme, opts ...Option) (*Matrix, error) {
	var cfg applyConfig
	for _, o := range opts {
		o(&cfg)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if cfg.strict {
		for _, k := range t.Labels() {
			if _, ok := s[k]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
			}
		}
	}

	m := &Matrix{
		characters: t.Characters(),
		issues:     t.Issues(),
		values:     make([][]float64, t.Len()),
	}
	for i := range m.characters {
		row := t.Row(i)
		vals := make([]float64, len(row))
		for j, k := range row {
			vals[j] = s.Weight(k)
		}
		m.values[i] = vals
	}
	return m, nil
}
