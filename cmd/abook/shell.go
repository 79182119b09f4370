package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aretw0/abook/pkg/shell"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Edit the address book interactively",
	Long: `Start a line-oriented session. Type help for the list of commands.
The book is saved on quit and at the end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		opts := []shell.Option{shell.WithLogger(slog.Default())}
		if isTerminal(in) {
			opts = append(opts, shell.WithPrompt(shell.DefaultPrompt))
		}
		return shell.New(svc, in, cmd.OutOrStdout(), opts...).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
