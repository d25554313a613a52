package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long WatchFile waits for writes to settle.
const WatchDebounce = 100 * time.Millisecond

// WatchFile calls onChange after path is written, created or renamed into place.
// The parent directory is watched so editors that replace the file atomically
// are still seen. Errors from onChange are logged and watching continues.
// WatchFile blocks until ctx is done.
func WatchFile(ctx context.Context, path string, onChange func() error, logger *log.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	name := filepath.Base(abs)
	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(WatchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "path", abs, "error", err)
		case <-timer.C:
			if err := onChange(); err != nil {
				logger.Error("reload failed", "path", abs, "error", err)
				continue
			}
			logger.Info("reloaded", "path", abs)
		}
	}
}
