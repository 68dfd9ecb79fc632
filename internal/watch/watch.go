// Package watch re-runs an action whenever a file changes, with debouncing,
// so editors that write in several events trigger one regeneration.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qoiview/qoiview/internal/log"
)

// Debounce is how long the watcher waits after the last event before firing.
const Debounce = 200 * time.Millisecond

// File watches path and calls action after each settled burst of writes.
// It watches the parent directory, not the file itself, so atomic
// rename-into-place saves keep being observed. File returns when ctx is
// cancelled or the watcher fails.
func File(ctx context.Context, path string, action func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger := log.WithComponent("watch")
	logger.Info().Str("file", abs).Msg("watching for changes")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(Debounce)
				fire = timer.C
			} else {
				timer.Reset(Debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := action(); err != nil {
				logger.Error().Err(err).Msg("regeneration failed")
				continue
			}
			logger.Info().Str("file", abs).Msg("regenerated")

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}
