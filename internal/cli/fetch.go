package cli

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the current ticker snapshot into a raw export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := getApp().Fetch(cmd.Context())
		return err
	},
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List saved raw exports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ListFiles(cmd.Context())
	},
}
