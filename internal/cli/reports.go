package cli

import (
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage analysis report logs",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List report logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ListReports(cmd.Context())
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the report log of a raw export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ShowReport(cmd.Context(), args[0])
	},
}

var reportsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every generated export, report and chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ClearReports(cmd.Context())
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsClearCmd)
}
