// Package edges builds and prunes weighted character-to-character edge lists.
//
// # Building
//
// [FromCorrelation] turns a correlation matrix into one candidate edge per
// ordered pair of distinct characters whose correlation is defined. Both
// directions of a pair are emitted, in row-major order. Undefined (NaN)
// correlations are dropped here and never reach selection.
//
// [FromCoAppearance] is an alternative builder that weights a pair by its
// summed co-appearance strength instead of its correlation.
//
// # Selecting
//
// [Filter] is the single selection policy. It keeps the union of:
//
//   - Rule A: every edge whose weight exceeds Params.SoftFloor
//   - Rule B: for each source, its Params.TopN heaviest edges whose weight
//     exceeds Params.HardFloor
//
// Rule B keeps weakly connected characters attached to the graph while the
// hard floor still cuts edges that are too weak to mean anything. The output
// preserves input order and contains each edge at most once.
//
// [AboveThreshold] and [TopPerSource] expose the two rules on their own.
package edges
