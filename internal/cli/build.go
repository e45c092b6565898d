package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/errors"
	tableio "github.com/matzehuels/comicweb/pkg/io"
	"github.com/matzehuels/comicweb/pkg/pipeline"
)

// maxListed bounds how many isolated characters are printed by name.
const maxListed = 10

// buildOpts holds the flags of the build command.
type buildOpts struct {
	pipelineFlags
	output   string
	formats  string
	detailed bool
}

// buildCommand creates the build command, which runs the pipeline on an
// appearance table and writes the selected edges.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <table.csv|table.json>",
		Short: "Build the character network from an appearance table",
		Long: `Build weights every appearance, correlates each pair of characters,
and keeps the edges above the soft floor plus the strongest edges of every
character. The selected edges are written as CSV by default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+formatList(pipeline.ValidFormats))
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add counts and metadata to diagram labels")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input string, opts *buildOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	popts, cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	popts.Formats = parseFormats(opts.formats, pipeline.FormatCSV)
	popts.Detailed = opts.detailed
	popts.Logger = c.Logger
	if err := popts.Validate(); err != nil {
		return err
	}
	if _, err := outputPaths(popts.Formats, opts.output, input); err != nil {
		return err
	}

	tbl, rep, err := importTable(input)
	if err != nil {
		return err
	}
	if rep.Skipped > 0 {
		c.Logger.Warn("skipped rows", "count", rep.Skipped)
	}
	if rep.Merged > 0 {
		c.Logger.Info("merged duplicate rows", "count", rep.Merged)
	}

	runner, err := c.newRunner(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, tbl, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d edges", len(res.Edges)))

	paths, err := writeArtifacts(res.Artifacts, popts.Formats, opts.output, input)
	if err != nil {
		return err
	}

	printSuccess("Built network of %s", StyleTitle.Render(filepath.Base(input)))
	printGraphStats(res.Stats.Nodes, res.Stats.Links, res.Stats.Isolated, res.CacheInfo.EdgesHit)
	for _, p := range paths {
		printFile(p)
	}
	if n := len(res.Isolated); n > 0 {
		printWarning("%d characters have no edges", n)
		listed := res.Isolated[:min(n, maxListed)]
		printDetail("%s", strings.Join(listed, ", "))
		if n > maxListed {
			printDetail("and %d more", n-maxListed)
		}
	}
	if p, ok := edgeListPath(paths); ok {
		printNextStep("Render it", fmt.Sprintf("%s render %s -f svg", appName, p))
	}
	return nil
}

// writeArtifacts writes each artifact and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths, err := outputPaths(formats, output, input)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		p := paths[f]
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// outputPaths derives one output path per format. A single format with an
// explicit output uses it verbatim; otherwise the format extension is
// appended to the base path, which defaults to "<input>.edges". A path that
// resolves to the input file is an error.
func outputPaths(formats []string, output, input string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths[f] = base + pipeline.FormatExtensions[f]
		}
	}
	in := filepath.Clean(input)
	for _, f := range formats {
		if filepath.Clean(paths[f]) == in {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s output %s would overwrite the input; choose another path with -o", f, paths[f])
		}
	}
	return paths, nil
}

// basePath strips a known format extension from output, or derives the base
// from the input file name when output is empty.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if !strings.HasSuffix(base, ".edges") {
			base += ".edges"
		}
		return base
	}
	var match string
	for _, ext := range pipeline.FormatExtensions {
		if strings.HasSuffix(output, ext) && len(ext) > len(match) {
			match = ext
		}
	}
	return strings.TrimSuffix(output, match)
}

// importTable reads an appearance table, mapping failures to error codes.
func importTable(path string) (*appearance.Table, tableio.Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, tableio.Report{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "table")
	}
	tbl, rep, err := tableio.ImportTable(path)
	if err != nil {
		return nil, rep, errors.Wrap(errors.ErrCodeInvalidTable, err, "import %s", path)
	}
	return tbl, rep, nil
}

// edgeListPath returns the first written CSV or JSON edge list.
func edgeListPath(paths []string) (string, bool) {
	for _, p := range paths {
		if strings.HasSuffix(p, ".csv") || (strings.HasSuffix(p, ".json") && !strings.HasSuffix(p, ".graph.json")) {
			return p, true
		}
	}
	return "", false
}

