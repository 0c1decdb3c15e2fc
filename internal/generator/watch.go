package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// DefaultDebounce groups bursts of file events into one rebuild.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration
	Logger   interfaces.Logger
}

// Watch runs build after every burst of changes below root until ctx is done.
// Each trigger is a full rebuild. Build errors are logged and watching
// continues. Hidden files and directories are ignored.
func Watch(ctx context.Context, root string, opts WatchOptions, build func(context.Context) error) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("generator: watch: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return err
	}
	logger.Info("generator.watch.started", "root", root, "debounce_ms", debounce.Milliseconds())

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("generator.watch.stopped", "root", root)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if hidden(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						logger.Warn("generator.watch.add_failed", "path", event.Name, "error", err)
					}
				}
			}
			logger.Debug("generator.watch.event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("generator.watch.error", "error", err)
		case <-fire:
			fire = nil
			if err := build(ctx); err != nil {
				logger.Error("generator.watch.rebuild_failed", "error", err)
			}
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("generator: watch %s: %w", path, err)
		}
		return nil
	})
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
