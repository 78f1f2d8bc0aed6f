package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		ev   fsnotify.Event
		want Kind
		ok   bool
	}{
		{fsnotify.Event{Name: "/d/_lifeline-a.md", Op: fsnotify.Create}, Created, true},
		{fsnotify.Event{Name: "/d/_lifeline-a.md", Op: fsnotify.Write}, Changed, true},
		{fsnotify.Event{Name: "/d/_lifeline-a.md", Op: fsnotify.Remove}, Deleted, true},
		{fsnotify.Event{Name: "/d/_lifeline-a.md", Op: fsnotify.Rename}, Deleted, true},
		{fsnotify.Event{Name: "/d/_lifeline-a.md", Op: fsnotify.Chmod}, 0, false},
		{fsnotify.Event{Name: "/d/notes.txt", Op: fsnotify.Create}, 0, false},
	}
	for _, c := range cases {
		got, ok := translate(c.ev)
		if ok != c.ok {
			t.Errorf("translate(%v): expected ok=%v, got %v", c.ev, c.ok, ok)
			continue
		}
		if ok && got.Kind != c.want {
			t.Errorf("translate(%v): expected %v, got %v", c.ev, c.want, got.Kind)
		}
	}
}

func TestKindString(t *testing.T) {
	if Created.String() != "created" || Changed.String() != "changed" || Deleted.String() != "deleted" {
		t.Error("unexpected kind names")
	}
	if Kind(0).String() != "unknown" {
		t.Error("expected unknown for zero kind")
	}
}

func TestFSWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	path := filepath.Join(dir, "_lifeline-x.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Kind == Created && ev.Path == path {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for create event")
		}
	}
}

func TestFSWatcherCloseClosesEvents(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
	// A second Close is a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("expected nil from second Close, got %v", err)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
