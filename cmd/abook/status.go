package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
	"github.com/aretw0/abook/pkg/core"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the address book and its storage as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := abook.Init(ctx, resolveBook(), serviceOptions(cmd)...)
		if err != nil {
			return err
		}
		svc := core.NewService(repo, nil)
		if err := svc.Load(ctx); err != nil {
			return err
		}

		report := map[string]any{}
		for _, c := range []any{svc, repo} {
			comp, okC := c.(introspection.Component)
			state, okS := c.(introspection.Introspectable)
			if okC && okS {
				report[comp.ComponentType()] = state.State()
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
