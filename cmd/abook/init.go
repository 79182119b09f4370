package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty address book",
	Long: `Create the address book file (and its directory). With --versioning the
directory is also turned into a git repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if readOnly || settings.Book.ReadOnly {
			return errors.New("cannot initialize an address book in read-only mode")
		}

		path := bookPath
		if path == "" {
			path = settings.BookFile()
		}
		_, statErr := os.Stat(path)

		svc, err := abook.New(cmd.Context(), path, serviceOptions(cmd, abook.WithAutoInit(true))...)
		if err != nil {
			return fmt.Errorf("failed to initialize address book: %w", err)
		}

		if statErr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Address book %s already exists (%d contacts).\n", path, svc.Len())
			return nil
		}
		if err := save(cmd, svc, abook.CommitTypeChore, "initialize address book"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty address book in %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
