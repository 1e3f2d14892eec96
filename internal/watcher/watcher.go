// Package watcher provides debounced file watching using fsnotify, used by
// prepare --watch to re-stage the tree when test files change.
package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher coalesces bursts of filesystem events into single callbacks.
// Editors produce several writes per save; without debouncing each save
// would trigger several re-stages.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
}

// New watches dir (non-recursively) with the given debounce window.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{fs: fs, debounce: debounce, done: make(chan struct{})}, nil
}

// Run blocks, invoking onChange after each settled burst of events and
// onError for watch errors. Close unblocks it.
func (w *Watcher) Run(onChange func(), onError func(error)) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		case <-fire:
			fire = nil
			onChange()
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and unblocks Run.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
