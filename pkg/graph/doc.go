// Package graph assembles the undirected character network from a selected
// edge list and defines its JSON wire format.
//
// # Assembly
//
// [FromEdges] collapses a directed edge list into an undirected [Graph]. When
// both directions of a pair are present, the pair becomes a single edge with
// the larger of the two weights. Only characters that keep at least one edge
// become nodes; [Graph.Isolated] reports the rest.
//
//	g := graph.FromEdges(selected, nil)
//	fmt.Println(g.NodeCount(), g.EdgeCount())
//	for _, name := range g.Isolated(table.Characters()) {
//	    log.Warn("isolated", "character", name)
//	}
//
// # Node Metadata
//
// Nodes carry arbitrary key-value metadata. The pipeline sets:
//
//	appearances        Number of issues with a full appearance
//	minor_appearances  Number of issues with a minor appearance
//	mentions           Number of issues with a mention
//
// # Serialization
//
// [Document] is the node-link JSON format used by the API and the CLI:
//
//	{
//	  "nodes": [{"id": "Cyclops", "degree": 2, "strength": 1.4}],
//	  "edges": [{"source": "Cyclops", "target": "Jean Grey", "weight": 0.8}]
//	}
//
// # Concurrency
//
// A Graph is safe for concurrent reads but not concurrent writes.
package graph
