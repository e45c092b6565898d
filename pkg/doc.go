// Package pkg holds the public libraries of comicweb.
//
// Data flows through the packages in this order:
//
//	[appearance] table of character × issue appearance kinds
//	     ↓
//	[weight] numeric matrix from a weighting scheme
//	     ↓
//	[correlation] Pearson coefficients per character pair
//	     ↓
//	[edges] candidate edges and the soft-floor / top-N selector
//	     ↓
//	[graph] undirected character network
//	     ↓
//	[render/nodelink] DOT, SVG and PNG via Graphviz
//
// [pipeline] runs these stages with caching ([cache]) and is shared by the
// CLI and the HTTP API. [io] reads and writes tables and edge lists as CSV
// or JSON, and [config] loads TOML or YAML settings.
//
// A minimal run:
//
//	tbl, _, err := io.ImportTable("appearances.csv")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, tbl, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, e := range res.Edges {
//	    fmt.Println(e.Source, e.Target, e.Weight)
//	}
//
// [appearance]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/appearance
// [weight]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/weight
// [correlation]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/correlation
// [edges]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/edges
// [graph]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/comicweb/pkg/config
package pkg
