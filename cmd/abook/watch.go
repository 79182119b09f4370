package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
	"github.com/aretw0/abook/pkg/adapters/lifecycle"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the address book by other processes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := openService(cmd, abook.WithWatcherErrorHandler(func(err error) {
			slog.Warn("watch failure", "error", err)
		}))
		if err != nil {
			return err
		}

		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}
		src := lifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (%d contacts). Press Ctrl+C to stop.\n", resolveBook(), svc.Len())
		for e := range src.Events() {
			if err := svc.Load(ctx); err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", time.Now().Format(time.TimeOnly), e, err)
				continue
			}
			fmt.Fprintf(out, "%s %s: %d contacts\n", time.Now().Format(time.TimeOnly), e, svc.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
