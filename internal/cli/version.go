package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of posture",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("posture version %s\n", version)
	},
}
