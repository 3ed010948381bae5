package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/gestor/pkg/core"
)

// eventBuffer is the capacity of the channel returned by Watch.
const eventBuffer = 16

type watchWorker struct {
	repo    *Repository
	pattern string
	watcher *fsnotify.Watcher
	events  chan core.Event
	// seen holds the last fingerprint reported per path, to drop rewrites
	// that leave the content unchanged.
	seen map[string]string
}

// Watch observes the data directory and emits an event for every change to a
// file whose name matches pattern (a doublestar glob relative to the data
// directory). An empty pattern watches the document only.
//
// The directory is watched rather than the file: atomic writers replace the
// file, which would silently end a watch on the old inode.
// The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	for _, ignore := range r.config.IgnorePatterns {
		if !doublestar.ValidatePattern(ignore) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", ignore, doublestar.ErrBadPattern)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.config.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.config.Dir, err)
	}

	w := &watchWorker{
		repo:    r,
		pattern: pattern,
		watcher: watcher,
		events:  make(chan core.Event, eventBuffer),
		seen:    make(map[string]string),
	}
	w.prime()
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.config.Logger.Error("watcher stopped", "error", err)
	}))

	return w.events, nil
}

// prime records the fingerprints of the matching files present when watching starts.
func (w *watchWorker) prime() {
	entries, err := os.ReadDir(w.repo.config.Dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !w.matches(e.Name()) {
			continue
		}
		path := filepath.Join(w.repo.config.Dir, e.Name())
		w.seen[path] = fingerprintFile(path)
	}
}

func (w *watchWorker) matches(name string) bool {
	if w.pattern == "" {
		return name == w.repo.config.FileName
	}
	ok, err := doublestar.Match(w.pattern, filepath.ToSlash(name))
	return err == nil && ok
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.repo.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.repo.config.Logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// process filters, maps and deduplicates a single filesystem event.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	name := filepath.Base(event.Name)
	if w.ignored(name) || !w.matches(name) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	if eType == core.EventDelete {
		delete(w.seen, event.Name)
	} else {
		fp := fingerprintFile(event.Name)
		if prev, ok := w.seen[event.Name]; ok && prev == fp && fp != "" {
			return
		}
		if _, known := w.seen[event.Name]; known && eType == core.EventCreate {
			eType = core.EventModify
		}
		w.seen[event.Name] = fp
	}

	w.repo.recordEvent()
	select {
	case w.events <- core.Event{Type: eType, Path: event.Name, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// ignored reports whether name is a temporary file of an atomic write or
// matches one of the configured ignore patterns.
func (w *watchWorker) ignored(name string) bool {
	if ok, _ := doublestar.Match(TempFilePrefix+"*", name); ok {
		return true
	}
	for _, pattern := range w.repo.config.IgnorePatterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// fingerprintFile returns the canonical digest of a JSON file, or "" when it
// cannot be read or is not valid JSON.
func fingerprintFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	fp, err := core.Fingerprint(core.Normalize(data))
	if err != nil {
		return ""
	}
	return fp
}
