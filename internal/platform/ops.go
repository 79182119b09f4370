package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/abook/pkg/adapters/fs"
	"github.com/aretw0/abook/pkg/core"
)

// Init prepares the storage of an address book and returns its repository.
// The 'uri' argument is adapter-specific (the book file for 'fs').
func Init(ctx context.Context, uri string, opts ...Option) (core.Repository, error) {
	o := buildOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFS builds the filesystem repository from the options.
func initFS(path string, o *options) (*fs.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	gitless, _ := o.config["gitless"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)
	fileMode, _ := o.config["file_mode"].(os.FileMode)
	lockTimeout, _ := o.config["lock_timeout"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	isReadOnly, _ := o.config["read_only"].(bool)

	// Dev safety defaults to on.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}
	// Read-only access cannot damage the book, so it may use the real path.
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveBookPath(path, useTemp)

	if o.logger != nil && IsDevRun() {
		switch {
		case isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}
	if o.logger != nil && useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	// Versioning follows the directory unless set explicitly: a book living
	// next to a .git is committed on save, any other book is not.
	if _, ok := o.config["gitless"]; !ok {
		gitPath := filepath.Join(filepath.Dir(resolvedPath), ".git")
		if _, err := os.Stat(gitPath); err == nil {
			gitless = false
		} else {
			gitless = true
			if o.logger != nil {
				o.logger.Debug("auto-detected gitless mode", "reason", ".git missing")
			}
		}
	}

	repo := fs.NewRepository(fs.Config{
		Path:         resolvedPath,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		FileMode:     fileMode,
		EventBuffer:  eventBuffer,
		LockTimeout:  lockTimeout,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})

	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		repo.RegisterSerializer(ext, serializer)
	}

	return repo, nil
}
