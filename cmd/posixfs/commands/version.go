package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objectfs/posixfs/internal/fuse"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "posixfs %s (commit: %s, built: %s, fuse: %s)\n",
			Version, Commit, Date, fuse.Backend)
	},
}
