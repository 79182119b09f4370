package abook

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/abook/internal/platform"
	"github.com/aretw0/abook/pkg/core"
	"github.com/aretw0/abook/pkg/git"
)

// --- Types ---

// Service is the command interface over an address book.
type Service = core.Service

// Record is a single contact.
type Record = core.Record

// --- Configuration ---

// Option defines a functional option for configuring abook.
type Option = platform.Option

// DefaultBookFile is the book used when no path is given.
const DefaultBookFile = platform.DefaultBookFile

// WithAutoInit creates the book directory (and git repository when versioned).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables a git commit per save.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp re-roots the book into the temp directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the book directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSerializer registers a codec (an fs.Serializer) for a file extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithEventBuffer sets the capacity of the Watch channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithFileMode sets the permission of the book file.
func WithFileMode(mode os.FileMode) Option {
	return platform.WithFileMode(mode)
}

// WithLockTimeout bounds how long a save waits for another writer's lock.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens the address book at path and loads it.
func New(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	return platform.New(ctx, path, opts...)
}

// Init prepares the storage for the address book at path without loading it.
func Init(ctx context.Context, path string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, path, opts...)
}

// --- Change reasons ---

// WithChangeReason attaches a commit message to ctx for the next Save.
func WithChangeReason(ctx context.Context, msg string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, git.AppendFooter(msg))
}

// FormatChangeReason builds a Conventional Commit message for WithChangeReason.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return git.FormatCommitMessage(ctype, scope, subject, body)
}

// CommitType constants for semantic change reasons.
const (
	CommitTypeFeat  = git.CommitTypeFeat
	CommitTypeFix   = git.CommitTypeFix
	CommitTypeDocs  = git.CommitTypeDocs
	CommitTypeChore = git.CommitTypeChore
)
