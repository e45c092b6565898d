package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/appearance"
)

// statsCommand creates the stats command, which prints per-character
// appearance counts.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		minAppearances int
		top            int
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "stats <table.csv|table.json>",
		Short: "Show appearance counts per character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, _, err := importTable(args[0])
			if err != nil {
				return err
			}
			filtered := appearance.KeepFrequent(tbl, minAppearances)
			stats := appearance.Summarize(filtered)
			if top > 0 && len(stats) > top {
				stats = stats[:top]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			fmt.Fprintln(out, statsTable(stats))
			fmt.Fprintf(out, "%s %s %s\n",
				StyleNumber.Render(fmt.Sprint(filtered.Len())),
				StyleDim.Render("characters in"),
				StyleNumber.Render(fmt.Sprint(filtered.IssueCount()))+StyleDim.Render(" issues"))
			if dropped := tbl.Len() - filtered.Len(); dropped > 0 {
				printDetail("%d characters below %d appearances hidden", dropped, minAppearances)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minAppearances, "min-appearances", 0, "hide characters with fewer full appearances")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "show only the n most frequent characters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}
