package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"coinlens/internal/app"
)

var (
	inspectFile  string
	inspectLimit int
	inspectRank  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Display the normalized table of a raw export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectLimit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		opts := app.InspectOptions{
			File:  inspectFile,
			Limit: inspectLimit,
			Rank:  inspectRank,
		}

		return getApp().Inspect(cmd.Context(), opts)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Raw export name or path")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 20, "Number of rows to display (0 shows all)")
	inspectCmd.Flags().BoolVar(&inspectRank, "rank", false, "Also rank assets by weighted average change")
	_ = inspectCmd.MarkFlagRequired("file")
}
