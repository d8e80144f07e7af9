package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coinlens/internal/analytics"
	"coinlens/internal/app"
)

var (
	analyzeFile string
	analyzeCoin string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <kind>",
	Short: "Run one analytics model and append its result to the report log",
	Long:  fmt.Sprintf("Run one analytics model over a raw export.\n\nKinds: %s", strings.Join(kindNames(), ", ")),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AnalyzeOptions{
			File: analyzeFile,
			Kind: args[0],
			Coin: analyzeCoin,
		}

		_, err := getApp().Analyze(cmd.Context(), opts)
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Raw export name or path")
	analyzeCmd.Flags().StringVar(&analyzeCoin, "coin", "", "Asset name (exact, case-sensitive)")
	_ = analyzeCmd.MarkFlagRequired("file")
}

func kindNames() []string {
	names := make([]string, 0, len(analytics.Kinds))
	for _, k := range analytics.Kinds {
		names = append(names, string(k))
	}
	return names
}
