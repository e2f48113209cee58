package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func collect(t *testing.T, path string, opts ...Option) (*Watcher, <-chan Event) {
	t.Helper()
	events := make(chan Event, 16)
	w, err := New(path, func(e Event) { events <- e }, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, events := collect(t, path, WithDebounce(20*time.Millisecond))
	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}

	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := waitEvent(t, events)
	if e.Path != path {
		t.Errorf("event path = %q, want %q", e.Path, path)
	}
	if e.Time.IsZero() {
		t.Error("event time not set")
	}
}

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	_, events := collect(t, path, WithDebounce(0))
	if err := os.WriteFile(path, []byte("editor: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if e := waitEvent(t, events); e.Op != OpCreate && e.Op != OpWrite {
		t.Errorf("first op = %v, want create or write", e.Op)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	_, events := collect(t, path, WithDebounce(10*time.Millisecond))
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		t.Fatalf("unexpected event %+v", e)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherDebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, events := collect(t, path, WithDebounce(300*time.Millisecond))
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	waitEvent(t, events)
	select {
	case e := <-events:
		t.Fatalf("burst produced a second event %+v", e)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "config.toml"), func(Event) {})
	if err == nil {
		t.Fatal("New() on a missing directory succeeded")
	}
}

func TestWatcherNilHandler(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "c.toml"), nil); err == nil {
		t.Fatal("New(nil handler) succeeded")
	}
}

func TestCloseIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "c.toml"), func(Event) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Operation
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Create | fsnotify.Write, OpCreate},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Chmod, 0},
	}
	for _, tt := range tests {
		if got := convertOp(tt.op); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestOperationString(t *testing.T) {
	names := map[Operation]string{
		OpCreate: "create", OpWrite: "write", OpRemove: "remove", OpRename: "rename", 0: "unknown",
	}
	for op, want := range names {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}
