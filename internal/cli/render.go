package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/errors"
	"github.com/matzehuels/comicweb/pkg/graph"
	tableio "github.com/matzehuels/comicweb/pkg/io"
	"github.com/matzehuels/comicweb/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	configPath string
	output     string
	formats    string
	engine     string
	detailed   bool
	noCache    bool
	redisAddr  string
	mongoURI   string
}

// renderCommand creates the render command, which draws an existing edge
// list with Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <edges.csv|edges.json>",
		Short: "Render an edge list as a network diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+formatList(pipeline.ValidFormats))
	cmd.Flags().StringVar(&opts.engine, "engine", "", "graphviz layout engine (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add degree and strength to labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&opts.redisAddr, "cache-redis", "", "use the redis cache at this address")
	cmd.Flags().StringVar(&opts.mongoURI, "cache-mongo", "", "use the mongodb cache at this URI")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	f := pipelineFlags{configPath: opts.configPath}
	popts, cfg, err := f.load(cmd)
	if err != nil {
		return err
	}
	popts.Formats = parseFormats(opts.formats, pipeline.FormatSVG)
	popts.Detailed = opts.detailed
	popts.Logger = c.Logger
	if opts.engine != "" {
		popts.Engine = opts.engine
	}
	if err := popts.Validate(); err != nil {
		return err
	}
	if _, err := outputPaths(popts.Formats, opts.output, input); err != nil {
		return err
	}
	if opts.redisAddr != "" {
		cfg.Cache.Redis = opts.redisAddr
	}
	if opts.mongoURI != "" {
		cfg.Cache.Mongo = opts.mongoURI
	}

	if _, err := os.Stat(input); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "edge list")
	}
	sel, err := tableio.ImportEdges(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "import %s", input)
	}
	g := graph.FromEdges(sel, nil)
	c.Logger.Infof("Loaded %d edges between %d characters", len(sel), g.NodeCount())

	runner, err := c.newRunner(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Rendering with %s...", popts.Engine))
	sp.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, sel, g, popts)
	if err != nil {
		sp.StopWithError("Rendering failed")
		return err
	}
	sp.StopWithSuccess("Rendered %s", StyleTitle.Render(input))

	paths, err := writeArtifacts(artifacts, popts.Formats, opts.output, input)
	if err != nil {
		return err
	}
	printGraphStats(g.NodeCount(), g.EdgeCount(), 0, cached)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
