// Package cli implements the comicweb command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/buildinfo"
	"github.com/matzehuels/comicweb/pkg/cache"
	"github.com/matzehuels/comicweb/pkg/config"
	"github.com/matzehuels/comicweb/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "comicweb"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "comicweb builds social networks of comic-book characters",
		Long:         `comicweb turns a table of character appearances per issue into a weighted, pruned character network and renders it with Graphviz.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Pipeline Flags
// =============================================================================

// pipelineFlags are the flags shared by commands that run the pipeline.
// Flags override values from the config file only when set explicitly.
type pipelineFlags struct {
	configPath     string
	edgeWeight     string
	softFloor      float64
	hardFloor      float64
	topN           int
	minAppearances int
	strict         bool
	engine         string
	noCache        bool
	redisAddr      string
	mongoURI       string
	refresh        bool
}

// register adds the flags to cmd, showing the built-in defaults.
func (f *pipelineFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (.toml, .yaml)")
	fs.StringVar(&f.edgeWeight, "edge-weight", d.EdgeWeight, "edge weight method: correlation, coappearance")
	fs.Float64Var(&f.softFloor, "soft-floor", d.Selection.SoftFloor, "keep every edge with weight above this value")
	fs.Float64Var(&f.hardFloor, "hard-floor", d.Selection.HardFloor, "top-n edges must have weight above this value")
	fs.IntVar(&f.topN, "top-n", d.Selection.TopN, "strongest edges kept per character (0 disables)")
	fs.IntVar(&f.minAppearances, "min-appearances", d.MinAppearances, "drop characters with fewer full appearances")
	fs.BoolVar(&f.strict, "strict", d.StrictWeights, "fail on appearance labels without a weight")
	fs.StringVar(&f.engine, "engine", d.Render.Engine, "graphviz layout engine")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	fs.StringVar(&f.redisAddr, "cache-redis", "", "use the redis cache at this address")
	fs.StringVar(&f.mongoURI, "cache-mongo", "", "use the mongodb cache at this URI")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// load reads the config file and applies explicitly set flags on top.
func (f *pipelineFlags) load(cmd *cobra.Command) (pipeline.Options, config.Config, error) {
	cfg, path, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return pipeline.Options{}, cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("edge-weight") {
		cfg.EdgeWeight = f.edgeWeight
	}
	if fs.Changed("soft-floor") {
		cfg.Selection.SoftFloor = f.softFloor
	}
	if fs.Changed("hard-floor") {
		cfg.Selection.HardFloor = f.hardFloor
	}
	if fs.Changed("top-n") {
		cfg.Selection.TopN = f.topN
	}
	if fs.Changed("min-appearances") {
		cfg.MinAppearances = f.minAppearances
	}
	if fs.Changed("strict") {
		cfg.StrictWeights = f.strict
	}
	if fs.Changed("engine") {
		cfg.Render.Engine = f.engine
	}
	if fs.Changed("cache-redis") {
		cfg.Cache.Redis = f.redisAddr
	}
	if fs.Changed("cache-mongo") {
		cfg.Cache.Mongo = f.mongoURI
	}
	if path != "" {
		printDetail("Config: %s", path)
	}

	opts := pipeline.FromConfig(cfg)
	opts.Refresh = f.refresh
	return opts, cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A redis address selects
// the redis cache, then a mongo URI; otherwise results are cached on disk.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cc config.Cache) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache, cc)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, cc config.Cache) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case cc.Redis != "":
		return cache.NewRedisCache(ctx, cc.Redis)
	case cc.Mongo != "":
		return cache.NewMongoCache(ctx, cc.Mongo)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the per-user cache directory (~/.cache/comicweb/ on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty entries are ignored; an empty string yields def.
func parseFormats(s string, def ...string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// formatList renders formats for help text.
func formatList(formats []string) string {
	return fmt.Sprintf("%s (comma-separated)", strings.Join(formats, ", "))
}
