package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the portfolio file when it changes and hands valid content
// to a publish function. Invalid edits are logged and ignored so viewers
// keep the last good version.
type Watcher struct {
	path     string
	publish  func(content.Portfolio)
	log      *zap.Logger
	debounce time.Duration
}

// NewWatcher watches path.
func NewWatcher(path string, publish func(content.Portfolio), log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{path: path, publish: publish, log: log, debounce: defaultDebounce}
}

// Run blocks until ctx is cancelled. The parent directory is watched because
// editors often replace the file instead of writing it in place.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.log.Info("watching content", zap.String("path", target))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	p, err := content.Load(w.path)
	if err != nil {
		w.log.Warn("content reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("content reloaded", zap.String("path", w.path))
	w.publish(*p)
}
