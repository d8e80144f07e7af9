package cli

import (
	"github.com/spf13/cobra"

	"coinlens/internal/app"
)

var (
	exportFile     string
	exportXLSXPath string
	exportCSVPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a normalized table as CSV and/or an XLSX workbook with its reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			File:     exportFile,
			XLSXPath: exportXLSXPath,
			CSVPath:  exportCSVPath,
		}

		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Raw export name or path")
	exportCmd.Flags().StringVar(&exportXLSXPath, "xlsx", "", "Path to write the XLSX workbook")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write the normalized CSV")
	_ = exportCmd.MarkFlagRequired("file")
}
