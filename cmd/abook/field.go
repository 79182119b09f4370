package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
	"github.com/aretw0/abook/pkg/core"
)

// fieldOp is a Service method that changes one phone or email of a contact.
type fieldOp func(svc *core.Service, name, value string) error

// newFieldCmd builds "<field> add|remove NAME VALUE".
func newFieldCmd(field, title string, add, remove fieldOp) *cobra.Command {
	lower := strings.ToLower(title)
	parent := &cobra.Command{
		Use:   field,
		Short: fmt.Sprintf("Add or remove %ss of a contact", lower),
	}

	run := func(op fieldOp, verb, done string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			if err := op(svc, args[0], args[1]); err != nil {
				return err
			}
			if err := save(cmd, svc, abook.CommitTypeFix, fmt.Sprintf("%s %s of %s", verb, field, args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s.\n", title, done)
			return nil
		}
	}

	parent.AddCommand(
		&cobra.Command{
			Use:   "add NAME VALUE",
			Short: fmt.Sprintf("Append a %s", lower),
			Args:  cobra.ExactArgs(2),
			RunE:  run(add, "add", "added"),
		},
		&cobra.Command{
			Use:     "remove NAME VALUE",
			Aliases: []string{"rm"},
			Short:   fmt.Sprintf("Remove a %s", lower),
			Args:    cobra.ExactArgs(2),
			RunE:    run(remove, "remove", "removed"),
		},
	)
	return parent
}

func init() {
	rootCmd.AddCommand(
		newFieldCmd("phone", "Phone number", (*core.Service).AddPhone, (*core.Service).RemovePhone),
		newFieldCmd("email", "Email address", (*core.Service).AddEmail, (*core.Service).RemoveEmail),
	)
}
