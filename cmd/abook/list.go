package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts in insertion order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}

		recs := svc.Records()
		if listMatch != "" {
			if recs, err = svc.Match(listMatch); err != nil {
				return err
			}
		}

		if listJSON {
			return writeJSON(cmd.OutOrStdout(), recs)
		}
		if len(recs) == 0 {
			msg := "Address book is empty."
			if listMatch != "" {
				msg = "No records found."
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}
		printRecords(cmd.OutOrStdout(), recs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only names matching a glob pattern (e.g. 'Jan*')")
}
