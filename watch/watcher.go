// Package watch turns file system notifications for a single folder into a
// stream of created/changed/deleted events for markdown files.
package watch

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"

	lifeline "github.com/lifelinehq/lifeline"
)

// Kind classifies a file event.
type Kind int

const (
	Created Kind = iota + 1
	Changed
	Deleted
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Event is a single file event.
type Event struct {
	Kind Kind
	Path string
}

// Watcher produces events until closed. The event channel is closed once the
// watcher stops and cannot be restarted.
type Watcher interface {
	Events() <-chan Event
	Close() error
}

// FSWatcher is a Watcher backed by fsnotify. Only markdown files directly inside
// the watched folder are reported.
type FSWatcher struct {
	w      *fsnotify.Watcher
	dir    string
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// New starts watching dir, which must already exist.
func New(dir string) (*FSWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	fw := &FSWatcher{
		w:       w,
		dir:     dir,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

// Events returns the event stream.
func (fw *FSWatcher) Events() <-chan Event {
	return fw.events
}

// Close stops the watcher and waits for the event channel to close.
func (fw *FSWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = fw.w.Close()
		<-fw.stopped
	})
	return err
}

func (fw *FSWatcher) loop() {
	defer close(fw.stopped)
	defer close(fw.events)

	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			out, ok := translate(ev)
			if !ok {
				continue
			}
			select {
			case fw.events <- out:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.Warn("watcher event overflow, some events were dropped", "dir", fw.dir)
				continue
			}
			slog.Error("watcher error", "dir", fw.dir, "error", err)
		}
	}
}

// translate maps an fsnotify event onto an Event. Chmod-only events and
// non-markdown paths are dropped.
func translate(ev fsnotify.Event) (Event, bool) {
	if !lifeline.IsMarkdown(ev.Name) {
		return Event{}, false
	}
	switch {
	case ev.Has(fsnotify.Create):
		return Event{Kind: Created, Path: ev.Name}, true
	case ev.Has(fsnotify.Write):
		return Event{Kind: Changed, Path: ev.Name}, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Event{Kind: Deleted, Path: ev.Name}, true
	}
	return Event{}, false
}
