// Package watcher emits debounced change events for the YAML files of a
// project directory.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/metrics"
)

// DebounceWindow collapses bursts of events for the same file. Editors
// routinely fire several writes per save.
const DebounceWindow = 300 * time.Millisecond

// Event kinds reported to the callback.
const (
	EventCreate = "create"
	EventModify = "modify"
	EventRemove = "remove"
)

// Event is one debounced file change.
type Event struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Watcher watches one project tree recursively. Starting a watch replaces
// the previous one, matching a project switch in the session.
type Watcher struct {
	onEvent func(Event)
	log     *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	pending map[string]*time.Timer
}

// New builds a watcher delivering events to onEvent. Callbacks run on the
// watcher goroutine; keep them short.
func New(onEvent func(Event), log *slog.Logger) *Watcher {
	return &Watcher{
		onEvent: onEvent,
		log:     log,
		pending: make(map[string]*time.Timer),
	}
}

// Watch starts watching projectPath recursively. New subdirectories picked
// up later are added as they appear through create events.
func (w *Watcher) Watch(ctx context.Context, projectPath string) error {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrCodeNotFound, "path does not exist: %s", projectPath)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "creating file watcher", err)
	}
	if err := addRecursive(fsw, projectPath); err != nil {
		fsw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.cancel = cancel
	w.mu.Unlock()

	go w.loop(watchCtx, fsw)
	w.log.Info("watching project", "path", projectPath)
	return nil
}

// Stop ends the current watch, if any.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(fsw, ev)
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	// Newly created directories join the watch so nested edits surface.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !skippedDir(filepath.Base(ev.Name)) {
				_ = addRecursive(fsw, ev.Name)
			}
			return
		}
	}

	if !isYAML(ev.Name) || inSkippedDir(ev.Name) {
		return
	}

	kind := EventModify
	switch {
	case ev.Op.Has(fsnotify.Create):
		kind = EventCreate
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		kind = EventRemove
	}
	w.debounce(Event{Path: ev.Name, Kind: kind})
}

// debounce arms one timer per path; later events within the window rewind
// it and the last kind wins.
func (w *Watcher) debounce(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[ev.Path]; ok {
		timer.Stop()
	}
	w.pending[ev.Path] = time.AfterFunc(DebounceWindow, func() {
		w.mu.Lock()
		delete(w.pending, ev.Path)
		w.mu.Unlock()

		metrics.WatcherEventsTotal.Inc()
		w.log.Debug("file changed", "path", ev.Path, "kind", ev.Kind)
		w.onEvent(ev)
	})
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && skippedDir(name) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "watching "+path, err)
		}
		return nil
	})
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func skippedDir(name string) bool {
	return strings.HasPrefix(name, ".") ||
		name == "node_modules" || name == "vendor" ||
		name == "charts" || name == "rendered"
}

func inSkippedDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "." && part != ".." && skippedDir(part) {
			return true
		}
	}
	return false
}
