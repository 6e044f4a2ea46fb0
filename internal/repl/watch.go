// File: watch.go
// Title: Manifest Watcher
// Description: Watches command manifest files with fsnotify and reports
//              debounced changes, so the REPL can rebuild its registry.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package repl

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
)

// Watcher reports changes of a set of files
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *ullog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches files. Their directories are watched so files that
// editors replace by renaming are still seen.
func NewWatcher(files []string, debounce time.Duration, logger *ullog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = ullog.GetDefault()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to create file watcher").
			WithCode(ulerror.CodeConfigError).
			WithOperation("repl.NewWatcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger.WithField("component", "unilang-watcher"),
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, ulerror.Wrap(err, "invalid manifest path").
				WithCode(ulerror.CodeConfigError).
				WithOperation("repl.NewWatcher").
				WithDetail("path", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, ulerror.Wrap(err, "failed to watch directory").
				WithCode(ulerror.CodeConfigError).
				WithOperation("repl.NewWatcher").
				WithDetail("dir", dir)
		}
	}
	return w, nil
}

// Run calls onChange once per burst of changes to a watched file until ctx
// is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) {
	defer w.watcher.Close()
	w.logger.Info("Watching command manifests", ullog.Fields{"files": len(w.files)})

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.schedule(event.Name, onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", ullog.Fields{"error": err.Error()})
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	return err == nil && w.files[abs]
}

func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Debug("Manifest changed", ullog.Fields{"path": path})
		onChange(path)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
