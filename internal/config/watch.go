package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// Watch reloads the config at path whenever it changes on disk and hands the
// result to fn. The parent directory is watched so atomic rename-over saves
// are seen. Reloads that fail to parse or validate are logged and skipped.
// Watch returns once the watcher is armed; it stops when ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(Config)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	target := filepath.Clean(path)
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: new watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(target), err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		cfg, err := Load(target)
		if err != nil {
			logger.Warn("config reload rejected", "path", target, "error", err)
			return
		}
		logger.Info("config reloaded", "path", target)
		fn(cfg)
	}

	go func() {
		defer fsw.Close()
		defer func() {
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, reload)
				mu.Unlock()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}
