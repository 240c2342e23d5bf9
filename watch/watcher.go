// Package watch reports changes to the markdown files of a content directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog-content/internal/logger"
)

// DefaultDebounce is the quiet period after the last change before onChange runs.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls onChange once a burst of *.md changes in a directory settles.
type Watcher struct {
	dir      string
	onChange func(ctx context.Context)
	debounce time.Duration
	logger   *slog.Logger

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New starts watching dir, creating it when missing. Events are only
// delivered while Run is executing.
func New(dir string, onChange func(ctx context.Context), opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watch: onChange cannot be nil")
	}

	w := &Watcher{
		dir:      filepath.Clean(dir),
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("watch: create %s: %w", w.dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	w.fsw = fsw

	return w, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
// onChange runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watching content directory", "dir", w.dir, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := 0
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("content changed", "path", event.Name, "op", event.Op.String())
			pending++
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "dir", w.dir, "error", err)

		case <-timer.C:
			w.logger.Info("content settled", "dir", w.dir, "events", pending)
			pending = 0
			w.onChange(ctx)
		}
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}

func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".md" {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
