package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"filebak/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of filebak.`,
	Run: func(cobraCmd *cobra.Command, _ []string) {
		fmt.Fprintf(cobraCmd.OutOrStdout(), "filebak version %s\n", cmd.Version)
		fmt.Fprintf(cobraCmd.OutOrStdout(), "  commit: %s\n", cmd.Commit)
		fmt.Fprintf(cobraCmd.OutOrStdout(), "  built:  %s\n", cmd.Date)
	},
}
