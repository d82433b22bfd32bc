package server

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// dataWatcher invalidates store caches when their backing files change
// on disk. Edits through the API already keep the stores current; this
// catches out-of-band edits to the data files themselves, so the next
// request reloads instead of serving a stale snapshot.
type dataWatcher struct {
	watcher      *fsnotify.Watcher
	invalidators map[string]func()
	logger       *slog.Logger
}

// newDataWatcher watches dir and wires file basenames to store
// invalidation callbacks. The watch loop runs until Close.
func newDataWatcher(dir string, invalidators map[string]func(), logger *slog.Logger) (*dataWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	dw := &dataWatcher{
		watcher:      w,
		invalidators: invalidators,
		logger:       logger,
	}
	go dw.loop()

	logger.Debug("watching data directory", "dir", dir)
	return dw, nil
}

func (dw *dataWatcher) loop() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			invalidate, ok := dw.invalidators[name]
			if !ok {
				continue
			}
			dw.logger.Debug("data file changed", "file", name, "op", event.Op.String())
			invalidate()
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("data watcher error", "error", err)
		}
	}
}

// Close stops the watch loop.
func (dw *dataWatcher) Close() {
	if err := dw.watcher.Close(); err != nil {
		dw.logger.Warn("data watcher close error", "error", err)
	}
}
