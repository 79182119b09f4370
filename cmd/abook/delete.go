package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a contact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}

		name := args[0]
		if !svc.Delete(name) {
			fmt.Fprintf(cmd.OutOrStdout(), "No record with the name %s exists.\n", name)
			return nil
		}
		if err := save(cmd, svc, abook.CommitTypeChore, "delete "+name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Record deleted: %s.\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
