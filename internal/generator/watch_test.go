package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "animals"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builds := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, WatchOptions{Debounce: 20 * time.Millisecond}, func(context.Context) error {
			select {
			case builds <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register the tree.
	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(root, "animals", "index.markdown")
	if err := os.WriteFile(target, []byte("---\nlayout: category\n---\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild after writing a file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Watch to return after cancellation")
	}
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), WatchOptions{}, func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
