// Package watcher rebuilds the index when the managed document
// directory changes on disk outside the application, for example when a
// user drops files in with a file manager.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// event before triggering a rebuild. Bulk copies produce event bursts;
// one rebuild at the end covers them all.
const DefaultDebounce = 2 * time.Second

// Rebuilder triggers a full index rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// Watcher observes a document directory and schedules rebuilds.
type Watcher struct {
	fs        *fsnotify.Watcher
	dir       string
	rebuilder Rebuilder
	debounce  time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher over the given directory.
func New(dir string, rebuilder Rebuilder, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		fs:        fs,
		dir:       dir,
		rebuilder: rebuilder,
		debounce:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes filesystem events until the context is cancelled.
// Rebuild failures are logged, not fatal: the next change tries again.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Document directory changed: %s (%s)", filepath.Base(event.Name), event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			w.rebuild(ctx)
		}
	}
}

// rebuild runs one rebuild attempt triggered by the debounce timer.
func (w *Watcher) rebuild(ctx context.Context) {
	logger.Info("Document directory changed, rebuilding index")
	if err := w.rebuilder.Rebuild(ctx); err != nil {
		if errors.Is(err, domain.ErrEmptyCorpus) {
			logger.Info("Document directory is empty, nothing to index")
			return
		}
		logger.Warn("Rebuild after directory change failed: %v", err)
	}
}

// relevant reports whether an event should schedule a rebuild.
// Hidden files, directories and chmod-only events are ignored; only
// files with a supported extension matter.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if _, ok := domain.FormatForFilename(name); !ok {
		return false
	}
	return true
}
