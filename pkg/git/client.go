// Package git versions the address book file with the git command line and
// provides the file lock used to serialize writers across processes.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	lockRetryMin = 5 * time.Millisecond
	lockRetryMax = 200 * time.Millisecond
)

// ErrLocked is returned by Lock when the lock file stays held until ctx ends.
var ErrLocked = errors.New("address book is locked")

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir  string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
// lockName is the lock file created inside workDir by Lock.
func NewClient(workDir, lockName string, logger *slog.Logger) *Client {
	if lockName == "" {
		lockName = ".abook.lock"
	}
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: filepath.Join(workDir, lockName),
	}
}

// LockPath returns the absolute lock file location.
func (c *Client) LockPath() string { return c.lockPath }

// Lock acquires the file-based lock, retrying with backoff until ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	delay := lockRetryMin
	for {
		// Try to create lock file atomically
		f, err := os.OpenFile(c.lockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(c.lockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if c.Logger != nil {
			c.Logger.Debug("lock busy, waiting", "path", c.lockPath, "retry_in", delay)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w by %s: %w", ErrLocked, c.lockPath, ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > lockRetryMax {
			delay = lockRetryMax
		}
	}
}

// Run executes a raw git command in the working directory.
// NOTE: It does NOT acquire the lock automatically. The caller must manage write safety via Client.Lock().
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsInstalled reports whether a git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether WorkDir is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Init initializes a new git repository. Re-running it is harmless.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Add adds files to the stage.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(args...)
	return err
}

// Commit records staged changes of the given paths.
func (c *Client) Commit(msg string, paths ...string) error {
	args := append([]string{"commit", "-m", msg, "--"}, paths...)
	_, err := c.Run(args...)
	return err
}

// HasChanges reports whether any of the paths differ from HEAD (staged,
// unstaged or untracked).
func (c *Client) HasChanges(paths ...string) (bool, error) {
	args := append([]string{"status", "--porcelain", "--"}, paths...)
	out, err := c.Run(args...)
	if err != nil {
		return false, err
	}
	return out != "", nil
}
