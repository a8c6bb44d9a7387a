package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"image-view/internal/render"
)

// DefaultWatchDelay groups the burst of events an editor produces when it
// saves a file.
const DefaultWatchDelay = 200 * time.Millisecond

// Watcher reports when a file changes on disk. It watches the parent
// directory so that editors which replace the file by rename are seen too.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	settler  *render.Settler
	onChange func(path string)
	logger   *slog.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher starts watching path. onChange runs on a background goroutine
// once per burst of changes; use appropriate synchronization if updating UI.
func NewWatcher(path string, delay time.Duration, onChange func(path string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		fs:       fs,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
	w.settler = render.NewSettler(delay, nil, w.fire)
	go w.loop()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.settler.Poke()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	w.logger.Debug("watched file changed", "path", w.path)
	if w.onChange != nil {
		w.onChange(w.path)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.settler.Stop()
		err = w.fs.Close()
	})
	return err
}
