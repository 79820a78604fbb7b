package privacy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PatternWatcher reloads a Filter's custom patterns when the pattern
// file changes on disk. Rapid write bursts are debounced so a single
// editor save does not trigger multiple reloads.
type PatternWatcher struct {
	filter   *Filter
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewPatternWatcher creates a watcher for the given pattern file.
func NewPatternWatcher(filter *Filter, path string, logger *slog.Logger) *PatternWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatternWatcher{
		filter:   filter,
		path:     path,
		debounce: 100 * time.Millisecond,
		logger:   logger,
	}
}

// Watch blocks until the context is cancelled, reloading the pattern
// file after each write or create event. A reload failure is logged
// and the previous pattern set stays in effect.
func (w *PatternWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	w.logger.Info("Pattern file watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Pattern file watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Pattern file watcher error", "error", err)
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer.
func (w *PatternWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.filter.LoadPatternFile(w.path); err != nil {
			w.logger.Error("Pattern reload failed",
				"path", w.path,
				"error", err,
			)
		}
	})
}
