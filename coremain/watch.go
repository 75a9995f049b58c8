package coremain

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 500 * time.Millisecond

// watchFile calls reload once file has been quiet for delay after a
// change. Editors that replace the file are handled by re-adding it.
// It returns when ctx is done.
func watchFile(ctx context.Context, lg *zap.Logger, file string, delay time.Duration, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}

	timer := time.NewTimer(delay)
	stopTimer(timer)
	defer timer.Stop()

	needReWatch := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Chmod) && !e.Has(fsnotify.Write) {
				continue
			}
			lg.Debug("script file event", zap.String("file", e.Name), zap.Stringer("op", e.Op))
			if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
				needReWatch = true
			}
			stopTimer(timer)
			timer.Reset(delay)

		case <-timer.C:
			if needReWatch {
				needReWatch = false
				_ = watcher.Remove(file)
				if err := watcher.Add(file); err != nil {
					lg.Warn("failed to re-watch script file", zap.String("file", file), zap.Error(err))
					continue
				}
			}
			lg.Info("script file changed, reloading", zap.String("file", file))
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lg.Warn("watcher error", zap.Error(err))
		}
	}
}

// stopTimer stops t and drains its channel.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
