package cli

import (
	"github.com/spf13/cobra"

	"coinlens/internal/app"
)

var (
	chartFile   string
	chartColumn string
	chartCoin   string
)

var chartCmd = &cobra.Command{
	Use:       "chart <bar|regression|trend>",
	Short:     "Render a PNG chart for a raw export",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bar", "regression", "trend"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ChartOptions{
			File:   chartFile,
			Kind:   args[0],
			Column: chartColumn,
			Coin:   chartCoin,
		}

		_, err := getApp().Chart(cmd.Context(), opts)
		return err
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartFile, "file", "", "Raw export name or path")
	chartCmd.Flags().StringVar(&chartColumn, "column", "percent_change_24h", "Percent change column for bar charts")
	chartCmd.Flags().StringVar(&chartCoin, "coin", "", "Asset name for trend charts")
	_ = chartCmd.MarkFlagRequired("file")
}
