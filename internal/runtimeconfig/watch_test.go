package runtimeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherReloadsValidChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitenav.yaml")
	writeConfig(t, path, "generator:\n  format: json\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	var seen []string
	w.OnChange(func(cfg Config) { seen = append(seen, cfg.Generator.Format) })
	var failures []error
	w.OnError(func(err error) { failures = append(failures, err) })

	writeConfig(t, path, "generator:\n  format: yaml\n")
	if err := w.v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})

	if got := w.Current().Generator.Format; got != "yaml" {
		t.Fatalf("expected reloaded format yaml, got %q", got)
	}
	if len(seen) != 1 || seen[0] != "yaml" {
		t.Fatalf("expected one callback with yaml, got %v", seen)
	}

	writeConfig(t, path, "generator:\n  format: toml\n")
	if err := w.v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})

	if got := w.Current().Generator.Format; got != "yaml" {
		t.Fatalf("expected previous config to stay active, got %q", got)
	}
	if len(failures) != 1 || len(seen) != 1 {
		t.Fatalf("expected one failure and no new callback, got failures=%v seen=%v", failures, seen)
	}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
