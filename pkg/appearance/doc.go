// Package appearance models the character × issue appearance table that feeds
// the edge-construction pipeline.
//
// # Overview
//
// A [Table] has one row per character and one column per issue. Each cell holds
// the [Kind] of appearance the character makes in that issue, or nothing when
// the character is absent. Issues form an ordered set shared by every row, so a
// cell that was never recorded is simply absent rather than an error.
//
// Character names are unique. Recording the same character twice does not add
// a second row: [Table.Merge] folds the cells together and keeps the most
// prominent kind per issue (Mentions < Minor Appearances < Appearances).
//
// # Unknown Labels
//
// Scraped wiki data is noisy. Labels outside the fixed vocabulary are kept
// verbatim in the table so that the weighting stage can decide what to do with
// them (by default they weigh 0.0). Use [Kind.Known] to test a label.
//
// # Statistics
//
// [Summarize] counts each kind of appearance per character and [KeepFrequent]
// drops characters that appear too rarely to say anything about the cast.
// Both return new values and never modify the input table.
package appearance
