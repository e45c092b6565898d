// Package io reads and writes appearance tables and edge lists.
//
// # Appearance Tables
//
// Tables are read from CSV or JSON. The CSV layout has the character name in
// the first column and one column per issue:
//
//	character name,Uncanny X-Men #1,Uncanny X-Men #2
//	Cyclops,Appearances,Appearances
//	Beast,Minor Appearances,
//	Magneto,,Mentions
//
// Blank cells are absent. Labels are kept verbatim (after trimming) so that
// weighting can resolve unknown labels; singular forms such as "Appearance"
// are normalized by [appearance.ParseKind]. Rows with an empty name or more
// cells than the header are skipped, short rows are padded as absent, and a
// repeated character is merged into its first row keeping the most prominent
// kind per issue. [Report] counts what happened.
//
// The JSON layout is:
//
//	{
//	  "issues": ["Uncanny X-Men #1", "Uncanny X-Men #2"],
//	  "characters": [
//	    {"name": "Cyclops", "appearances": {"Uncanny X-Men #1": "Appearances"}}
//	  ]
//	}
//
// # Edge Lists
//
// Edge lists are written as CSV with a source,target,weight header or as
// JSON ({"edges": [{"source", "target", "weight"}]}). Both forms can be read
// back with [ReadEdgesCSV], [ReadEdgesJSON] or [ImportEdges].
//
// # File Helpers
//
// [ImportTable], [ImportEdges] and [ExportEdges] choose the format from the
// file extension (.csv or .json).
package io
