package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/abook/pkg/core"
)

const defaultEventBuffer = 16

// Watch reports changes of the book file made by any process, including
// this one. The channel is closed when ctx is cancelled or the watcher fails.
//
// The parent directory is watched instead of the file itself, because an
// atomic save replaces the file and a file watch would be lost on rename.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(r.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, &core.StorageError{Op: "watch", Path: dir, Err: err}
	}

	size := r.config.EventBuffer
	if size <= 0 {
		size = defaultEventBuffer
	}
	events := make(chan core.Event, size)

	_, statErr := os.Stat(r.Path)
	w := &bookWatcher{
		repo:    r,
		watcher: watcher,
		events:  events,
		target:  filepath.Clean(r.Path),
		exists:  statErr == nil,
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

type bookWatcher struct {
	repo    *Repository
	watcher *fsnotify.Watcher
	events  chan core.Event
	target  string
	exists  bool
}

func (w *bookWatcher) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			eType, relevant := w.classify(event)
			if !relevant {
				continue
			}
			w.repo.config.Logger.Debug("address book changed", "type", eType, "op", event.Op.String())
			select {
			case w.events <- core.Event{Type: eType, Path: w.target, Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.repo.reportWatchError(wErr)
		}
	}
}

// classify maps a raw notification to a book event. Temp files, the lock
// file and sibling files are ignored.
func (w *bookWatcher) classify(event fsnotify.Event) (core.EventType, bool) {
	if isTempFile(event.Name) || filepath.Clean(event.Name) != w.target {
		return "", false
	}

	switch {
	case event.Has(fsnotify.Create):
		// An atomic save renames over the book; report it as a modification
		// when the book was already there.
		if w.exists {
			return core.EventModify, true
		}
		w.exists = true
		return core.EventCreate, true
	case event.Has(fsnotify.Write):
		w.exists = true
		return core.EventModify, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.exists = false
		return core.EventDelete, true
	}
	return "", false
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watcher error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
