package dataset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/EmbedScope/internal/logger"
)

// Watcher reloads a CSV table whenever it changes on disk.
type Watcher struct {
	path    string
	opts    LoadOptions
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

// NewWatcher watches the directory holding path, so editors that replace
// the file on save are still seen.
func NewWatcher(path string, opts LoadOptions, log *logger.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher{
		path:    absPath,
		opts:    opts,
		watcher: watcher,
		log:     log,
	}, nil
}

// Run blocks until ctx is done, calling onLoad with every successfully
// reloaded table. Load failures are logged and the previous data stays live.
func (w *Watcher) Run(ctx context.Context, onLoad func(*Dataset)) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			data, err := LoadFile(w.path, w.opts)
			if err != nil {
				w.log.WarnWithFields("reload failed, keeping previous data", []logger.Field{logger.Error(err)})
				continue
			}
			w.log.InfoWithFields("data reloaded", []logger.Field{
				logger.F("path", w.path),
				logger.Count(data.Len()),
			})
			onLoad(data)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
