package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
)

var (
	addPhones []string
	addEmails []string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a contact or replace the one with the same name",
	Example: `  abook add "Jan Kowalski" --phone 123456789 --email jan@example.com
  abook add "Anna Nowak" -p 111111111,222222222`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}

		rec, err := svc.CreateRecord(args[0], addPhones, addEmails)
		if err != nil {
			return err
		}
		name := rec.Name().String()
		_, getErr := svc.Get(name)
		replaced := getErr == nil

		svc.Add(rec)
		if err := save(cmd, svc, abook.CommitTypeFeat, "add "+name); err != nil {
			return err
		}

		if replaced {
			fmt.Fprintf(cmd.OutOrStdout(), "Record replaced: %s\n", rec)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Record added: %s\n", rec)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringSliceVarP(&addPhones, "phone", "p", nil, "Phone number (9 digits); repeat or separate with commas")
	addCmd.Flags().StringSliceVarP(&addEmails, "email", "e", nil, "Email address; repeat or separate with commas")
}
