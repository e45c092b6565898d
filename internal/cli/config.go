package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/config"
	"github.com/matzehuels/comicweb/pkg/errors"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration that build and serve would use, as TOML.

Without --config, the first existing file of these is loaded:
  <user config dir>/comicweb/config.toml
  <user config dir>/comicweb/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loaded, err := config.LoadOrDefault(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config")
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", loaded)
			}
			if loaded == "" {
				loaded = "built-in defaults"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# source: %s\n", loaded)
			return cfg.WriteTOML(out)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (.toml, .yaml)")
	return cmd
}
