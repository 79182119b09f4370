package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
)

// editCmd groups the commands that change an existing contact.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change the name, a phone number or an email address of a contact",
}

var editNameCmd = &cobra.Command{
	Use:   "name OLD NEW",
	Short: "Rename a contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		if err := svc.EditName(args[0], args[1]); err != nil {
			return err
		}
		if err := save(cmd, svc, abook.CommitTypeFix, fmt.Sprintf("rename %s to %s", args[0], args[1])); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Record updated.")
		return nil
	},
}

var editPhoneCmd = &cobra.Command{
	Use:   "phone NAME OLD NEW",
	Short: "Replace a phone number",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		if err := svc.EditPhone(args[0], args[1], args[2]); err != nil {
			return err
		}
		if err := save(cmd, svc, abook.CommitTypeFix, "update phone of "+args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Phone number updated.")
		return nil
	},
}

var editEmailCmd = &cobra.Command{
	Use:   "email NAME OLD NEW",
	Short: "Replace an email address",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		if err := svc.EditEmail(args[0], args[1], args[2]); err != nil {
			return err
		}
		if err := save(cmd, svc, abook.CommitTypeFix, "update email of "+args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Email address updated.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.AddCommand(editNameCmd, editPhoneCmd, editEmailCmd)
}
