package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X osv-diff/cmd.Version=... -X osv-diff/cmd.Revision=...".
var (
	Version  = "dev"
	Revision = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "osv-diff-%s-%s\n", Version, Revision)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
