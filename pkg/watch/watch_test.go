package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebounceCollapsesBursts(t *testing.T) {
	tmpDir := t.TempDir()

	var fires int32
	w, err := New([]string{tmpDir}, 100*time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	// A burst of writes within the debounce interval.
	for i := 0; i < 3; i++ {
		path := filepath.Join(tmpDir, "note.md")
		if err := os.WriteFile(path, []byte("tick"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// Wait out the debounce window plus slack.
	time.Sleep(400 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Errorf("Expected 1 refresh for the burst, got %d", got)
	}
}

func TestIgnoresNonMarkdown(t *testing.T) {
	tmpDir := t.TempDir()

	var fires int32
	w, err := New([]string{tmpDir}, 50*time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(tmpDir, "note.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(250 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 0 {
		t.Errorf("Expected no refresh for non-markdown writes, got %d", got)
	}
}

func TestMissingDirSkipped(t *testing.T) {
	w, err := New([]string{"/nonexistent/vault"}, 50*time.Millisecond, func() {})
	if err != nil {
		t.Fatalf("missing dir should be skipped, not fail: %v", err)
	}
	w.Start()
	w.Stop()
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "a.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.md", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "a.md", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "a.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		if got := relevant(tc.event); got != tc.want {
			t.Errorf("relevant(%v %v) = %v, want %v", tc.event.Name, tc.event.Op, got, tc.want)
		}
	}
}
