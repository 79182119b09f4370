package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook/pkg/adapters/fs"
	"github.com/aretw0/abook/pkg/core"
)

var findJSON bool

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find TERM",
	Short: "Find contacts by name fragment, phone or email",
	Long: `Find matches a name containing TERM (ignoring case) or a phone number or
email address equal to TERM.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		found := svc.Find(args[0])
		if findJSON {
			return writeJSON(cmd.OutOrStdout(), found)
		}
		if len(found) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
			return nil
		}
		printRecords(cmd.OutOrStdout(), found)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Output in JSON format")
}

func printRecords(w io.Writer, recs []*core.Record) {
	for _, rec := range recs {
		fmt.Fprintln(w, rec)
	}
}

func writeJSON(w io.Writer, recs []*core.Record) error {
	out := make([]fs.RecordData, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fs.NewRecordData(rec))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
