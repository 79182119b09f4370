package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of abook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "abook version %s\n", strings.TrimSpace(abook.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
