package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.IntakeWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher signals when a file appears or changes in the intake directory.
type Watcher struct {
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher creates a watcher over dir. Watching starts on Watch.
func NewWatcher(dir string) *Watcher {
	return &Watcher{dir: dir}
}

// Watch starts watching the directory. The returned channel carries at
// most one pending signal; bursts of filesystem events collapse into it.
// The channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil, errors.New("watcher already started")
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("intake dir error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("intake dir error: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fsw

	wake := make(chan struct{}, 1)
	go w.loop(ctx, fsw, wake)
	return wake, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, wake chan<- struct{}) {
	defer close(wake)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.handleFsEvent(ev) {
				continue
			}
			select {
			case wake <- struct{}{}:
			default:
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("intake watcher: %v", err)
		}
	}
}

// handleFsEvent reports whether the event may have made a new document
// claimable.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if isHidden(filepath.Base(ev.Name)) {
		return false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return false
	}
	logger.Debug("intake event %s on %s", ev.Op, ev.Name)
	return true
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}
