package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lilcord/lilbot/pkg/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	// Skip config loading
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), utils.Version())
	},
}
