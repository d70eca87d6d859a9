package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher calls back when a single file changes. The parent directory
// is watched so that atomic replace-by-rename is seen as a change.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a watcher for the file at path
func New(path string, debounce time.Duration, logger *zap.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
	}
}

// Run blocks, invoking onChange once per burst of changes to the file,
// until ctx is cancelled
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(w.path)
	w.logger.Debug("watching file", zap.String("path", target), zap.Duration("debounce", w.debounce))

	// Debounce timer, armed only while changes are pending
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.logger.Debug("file changed", zap.String("path", target))
			onChange()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
