package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/internal/api"
)

// serveCommand creates the serve command, which starts the HTTP API.
// Pipeline flags set the defaults that requests override.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags.noCache, cfg.Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, opts, c.Logger)
			if len(origins) > 0 {
				srv.AllowedOrigins = origins
			}
			printInfo("Serving on %s", StyleValue.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (default all)")

	return cmd
}
