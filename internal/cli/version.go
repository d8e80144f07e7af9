package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"coinlens/internal/version"
)

var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print build information",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.String())
	},
}
