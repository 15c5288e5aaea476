package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bump CLI's own build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
