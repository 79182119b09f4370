package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/abook/pkg/core"
	"github.com/aretw0/abook/pkg/git"
)

// DefaultFileMode is the permission of the book file.
const DefaultFileMode os.FileMode = 0o600

// DefaultLockTimeout bounds how long Save waits for another writer.
const DefaultLockTimeout = 10 * time.Second

// Repository implements core.Repository by storing the whole address book
// in a single file. Optionally every save is committed to Git.
type Repository struct {
	Path        string
	git         *git.Client
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastSave      *time.Time
	saves         int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path        string // Book file, e.g. "contacts.json". The extension selects the serializer.
	AutoInit    bool   // Create the parent directory (and git repository when versioned).
	Gitless     bool   // Disable git commits on save.
	MustExist   bool   // Fail Initialize if the parent directory is missing.
	ReadOnly    bool   // Reject Save with core.ErrReadOnly.
	FileMode    os.FileMode
	EventBuffer int           // Watch channel capacity. Zero means 16.
	LockTimeout time.Duration // Longest wait for the lock in Save. Zero means DefaultLockTimeout.
	Logger      *slog.Logger
	// ErrorHandler receives runtime watcher failures which are otherwise only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.FileMode == 0 {
		config.FileMode = DefaultFileMode
	}
	if config.LockTimeout <= 0 {
		config.LockTimeout = DefaultLockTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	dir := filepath.Dir(config.Path)
	return &Repository{
		Path:        config.Path,
		git:         git.NewClient(dir, filepath.Base(config.Path)+".lock", config.Logger),
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// RegisterSerializer adds or replaces the serializer for an extension (e.g. ".toml").
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.serializers[strings.ToLower(ext)] = s
}

func (r *Repository) serializer() (Serializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(r.Path))
	if ext == "" {
		ext = ".json"
	}
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %q", ext)
	}
	return s, nil
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		return fmt.Errorf("address book path is empty")
	}
	if _, err := r.serializer(); err != nil {
		return err
	}

	if r.config.ReadOnly {
		return nil
	}

	// 1. Directory Initialization
	dir := filepath.Dir(r.Path)
	if r.config.MustExist {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("address book directory does not exist: %s", dir)
		}
		if err != nil {
			return &core.StorageError{Op: "stat", Path: dir, Err: err}
		}
		if !info.IsDir() {
			return fmt.Errorf("address book directory is not a directory: %s", dir)
		}
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &core.StorageError{Op: "create directory", Path: dir, Err: err}
		}
	}

	// 2. Git Initialization
	if r.config.Gitless {
		return nil
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if !r.git.IsRepo() {
		if !r.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", dir)
		}
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		r.config.Logger.Info("initialized git repository", "dir", dir)
	}
	return nil
}

// Load reads the book file. A missing file yields an empty book.
func (r *Repository) Load(ctx context.Context) (*core.AddressBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := r.serializer()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.config.Logger.Debug("no address book yet, starting empty", "path", r.Path)
		return core.NewAddressBook(), nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: "read", Path: r.Path, Err: err}
	}

	snap, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &core.FormatError{Path: r.Path, Err: err}
	}
	book, err := snap.Book()
	if err != nil {
		return nil, &core.FormatError{Path: r.Path, Err: err}
	}

	r.config.Logger.Debug("address book read", "path", r.Path, "records", book.Len())
	return book, nil
}

// Save persists the book atomically and commits it to Git when versioning is on.
//
// Workflow:
//  1. Serialize the snapshot with the serializer chosen by extension.
//  2. Take the cross-process lock, waiting at most LockTimeout.
//  3. Write to a temp file and rename it over the book.
//  4. (If Git enabled) 'git add' and 'git commit' with the change reason from ctx.
func (r *Repository) Save(ctx context.Context, book *core.AddressBook) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	s, err := r.serializer()
	if err != nil {
		return err
	}
	data, err := s.Serialize(NewSnapshot(book))
	if err != nil {
		return fmt.Errorf("failed to serialize address book: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, r.config.LockTimeout)
	unlock, err := r.git.Lock(lockCtx)
	cancel()
	if err != nil {
		return &core.StorageError{Op: "lock", Path: r.git.LockPath(), Err: err}
	}
	defer unlock()

	if err := writeFileAtomic(r.Path, data, r.config.FileMode); err != nil {
		return &core.StorageError{Op: "write", Path: r.Path, Err: err}
	}

	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.saves++
	r.mu.Unlock()

	r.config.Logger.Debug("address book written", "path", r.Path, "records", book.Len(), "bytes", len(data))

	if r.config.Gitless {
		return nil
	}
	return r.commit(ctx, book.Len())
}

func (r *Repository) commit(ctx context.Context, records int) error {
	name := filepath.Base(r.Path)

	changed, err := r.git.HasChanges(name)
	if err != nil {
		return fmt.Errorf("failed to check git status: %w", err)
	}
	if !changed {
		r.config.Logger.Debug("nothing to commit", "path", r.Path)
		return nil
	}

	msg := git.SaveMessage(records)
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = git.AppendFooter(val)
	}

	if err := r.git.Add(name); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	if err := r.git.Commit(msg, name); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}
