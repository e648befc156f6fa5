package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(path, []byte(`{"walls":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// a sibling file must not trigger a change
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(`{"walls":[[[0,0],[1,0],[1,1]]]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-w.Changes():
		if got != w.Path() {
			t.Errorf("change for %s, want %s", got, w.Path())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFileWatcherMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent.json"), 0); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFileWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.wkt")
	if err := os.WriteFile(path, []byte("POLYGON((0 0,1 0,1 1))"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Errorf("Changes still open after Close")
	}
}
