package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	changes := make(chan struct{}, 16)
	go w.Run(func() {
		changes <- struct{}{}
	}, nil)

	// A burst of writes within the debounce window.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "load.jmx"), []byte("v"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change callback after writes")
	}

	// The burst must have been coalesced into one callback.
	select {
	case <-changes:
		t.Error("burst produced more than one callback")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	if _, err := New(filepath.Join(t.TempDir(), "absent"), time.Millisecond); err == nil {
		t.Error("expected error for missing directory")
	}
}
