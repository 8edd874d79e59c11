package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/aretw0/slipbox/pkg/core"
)

// Watch reports changes to matching files until ctx is done.
// Bursts of events for the same file are collapsed into one.
func (s *Source) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	gi, err := s.loadIgnore()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := s.addDirs(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan core.Event, 16)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()
		if err := s.watchLoop(ctx, watcher, gi, events); err != nil {
			s.handleWatchError(err)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

// addDirs registers the root, and every subdirectory in recursive mode.
func (s *Source) addDirs(watcher *fsnotify.Watcher) error {
	root := s.resolvedPath()
	if !s.config.Recursive {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", s.Path, err)
		}
		return nil
	}

	return filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && s.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (s *Source) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, gi *ignore.GitIgnore, events chan<- core.Event) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// Stack traces only at debug level.
			if s.config.Logger.Enabled(ctx, slog.LevelDebug) {
				s.config.Logger.Debug("watcher panic", "stack", string(debug.Stack()))
			}
		}
	}()

	deb := newDebouncer(s.config.Debounce)
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if e, ok := s.translate(watcher, gi, event); ok {
				deb.add(e)
			}

		case <-deb.C():
			for _, e := range deb.drain() {
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.handleWatchError(wErr)
		}
	}
}

// translate maps a raw fsnotify event to a core.Event for a matching file.
// New directories are added to the watcher in recursive mode.
func (s *Source) translate(watcher *fsnotify.Watcher, gi *ignore.GitIgnore, event fsnotify.Event) (core.Event, bool) {
	s.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	rel, err := s.relative(event.Name)
	if err != nil || s.inSystemDir(rel) {
		return core.Event{}, false
	}

	if event.Has(fsnotify.Create) && s.config.Recursive && isDir(event.Name) {
		if !s.skipDir(filepath.Base(event.Name)) {
			if err := watcher.Add(event.Name); err != nil {
				s.handleWatchError(fmt.Errorf("failed to watch %s: %w", event.Name, err))
			}
		}
		return core.Event{}, false
	}

	if !s.matches(rel) || ignored(gi, rel) {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{Type: eType, Name: rel, Timestamp: time.Now().Unix()}, true
}

func (s *Source) handleWatchError(err error) {
	s.config.Logger.Error("watch error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

// debouncer collapses events per file name until the stream has been quiet
// for the configured window. It is owned by a single goroutine.
type debouncer struct {
	window  time.Duration
	timer   *time.Timer
	armed   bool
	order   []string
	pending map[string]core.Event
}

func newDebouncer(window time.Duration) *debouncer {
	t := time.NewTimer(window)
	t.Stop()
	return &debouncer{
		window:  window,
		timer:   t,
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event) {
	prev, seen := d.pending[e.Name]
	if !seen {
		d.order = append(d.order, e.Name)
	} else if prev.Type == core.EventCreate && e.Type == core.EventModify {
		// A file written right after creation is still a creation.
		e.Type = core.EventCreate
	}
	d.pending[e.Name] = e
	d.timer.Reset(d.window)
	d.armed = true
}

// C fires once the window has elapsed since the last add.
// It is nil while nothing is pending so that select skips it.
func (d *debouncer) C() <-chan time.Time {
	if !d.armed {
		return nil
	}
	return d.timer.C
}

func (d *debouncer) drain() []core.Event {
	out := make([]core.Event, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.pending[name])
	}
	d.order = d.order[:0]
	clear(d.pending)
	d.armed = false
	return out
}

func (d *debouncer) stop() {
	d.timer.Stop()
}
