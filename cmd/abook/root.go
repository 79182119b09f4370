package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/abook"
	"github.com/aretw0/abook/internal/config"
	"github.com/aretw0/abook/internal/platform"
	"github.com/aretw0/abook/pkg/adapters/fs"
	"github.com/aretw0/abook/pkg/core"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitMalformed = 2
)

var (
	bookPath    string
	configPath  string
	verbose     bool
	readOnly    bool
	versioning  bool
	message     string
	lockTimeout time.Duration

	settings = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "abook",
	Short: "A contact address book with validated phones and emails",
	Long: `abook keeps contacts (a name, phone numbers and email addresses) in a
single JSON or YAML file. Every change is validated before it is stored and
the file is replaced atomically. A book living next to a .git directory is
committed on every save.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		settings = cfg

		logger, err := cfg.NewLogger(cmd.ErrOrStderr(), verbose)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrMalformed):
		return exitMalformed
	default:
		return exitFailure
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&bookPath, "book", "b", "", "Address book file (default: contacts.json found upwards from the working directory)")
	flags.StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultFile+" if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&readOnly, "read-only", false, "Open the book without writing to it")
	flags.BoolVar(&versioning, "versioning", false, "Commit every save to git (default: on when the book directory has a .git)")
	flags.StringVarP(&message, "message", "m", "", "Change reason recorded as the commit message")
	flags.DurationVar(&lockTimeout, "lock-timeout", fs.DefaultLockTimeout, "Longest wait for a book locked by another process")
}

// resolveBook picks the book file: --book, then the config, then the
// nearest existing book upwards from the working directory.
func resolveBook() string {
	if bookPath != "" {
		return bookPath
	}
	if settings.Book.Path != "" {
		return settings.Book.Path
	}
	name := filepath.Base(settings.BookFile())
	if cwd, err := os.Getwd(); err == nil {
		if found, err := platform.FindBook(cwd, name); err == nil {
			return found
		}
	}
	return name
}

// serviceOptions translates flags and config into library options.
func serviceOptions(cmd *cobra.Command, extra ...abook.Option) []abook.Option {
	opts := []abook.Option{
		abook.WithLogger(slog.Default()),
		abook.WithReadOnly(readOnly || settings.Book.ReadOnly),
		abook.WithLockTimeout(lockTimeout),
	}
	switch {
	case cmd.Flags().Changed("versioning"):
		opts = append(opts, abook.WithVersioning(versioning))
	case settings.Book.Versioning != nil:
		opts = append(opts, abook.WithVersioning(*settings.Book.Versioning))
	}
	return append(opts, extra...)
}

// openService loads the address book for a command.
func openService(cmd *cobra.Command, extra ...abook.Option) (*core.Service, error) {
	path := resolveBook()
	slog.Debug("opening address book", "path", path)

	svc, err := abook.New(cmd.Context(), path, serviceOptions(cmd, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open address book %s: %w", path, err)
	}
	return svc, nil
}

// save persists svc, recording --message or the given subject as the change reason.
func save(cmd *cobra.Command, svc *core.Service, ctype, subject string) error {
	reason := message
	if reason == "" {
		reason = abook.FormatChangeReason(ctype, "contacts", subject, "")
	}
	if err := svc.Save(abook.WithChangeReason(cmd.Context(), reason)); err != nil {
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}
