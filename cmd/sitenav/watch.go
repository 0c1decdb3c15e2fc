package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitenav"
	"github.com/goliatone/go-sitenav/internal/generator"
)

var errWatchRequiresMarkdown = errors.New("watch only supports the markdown source")

type watchFlags struct {
	contentDir string
	outputDir  string
	format     string
}

// liveModule swaps the running module when the config file changes.
type liveModule struct {
	mu     sync.Mutex
	module *sitenav.Module
}

func (l *liveModule) current() *sitenav.Module {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.module
}

func (l *liveModule) swap(next *sitenav.Module) {
	l.mu.Lock()
	prev := l.module
	l.module = next
	l.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	flags := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the manifest whenever content or config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			if cfg.SourceProvider() != sitenav.SourceMarkdown {
				return errWatchRequiresMarkdown
			}
			return runWatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, flags, cfg)
		},
	}
	cmd.Flags().StringVar(&flags.contentDir, "content-dir", "", "markdown content directory")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "manifest directory")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "manifest format: json or yaml")
	return cmd
}

func (f *watchFlags) apply(cfg *sitenav.Config) {
	if f.contentDir != "" {
		cfg.Markdown.ContentDir = f.contentDir
	}
	if f.outputDir != "" {
		cfg.Generator.OutputDir = f.outputDir
	}
	if f.format != "" {
		cfg.Generator.Format = f.format
	}
}

func runWatch(ctx context.Context, out, errOut io.Writer, root *rootOptions, flags *watchFlags, cfg sitenav.Config) error {
	observer := sitenav.WithGenerateObserver(func(_ context.Context, result *sitenav.BuildResult) {
		renderBuild(out, result)
	})

	module, err := sitenav.New(cfg, observer)
	if err != nil {
		return err
	}
	live := &liveModule{module: module}
	defer live.swap(nil)

	build := func(ctx context.Context) error {
		return live.current().Generate(ctx, sitenav.GenerateCommand{})
	}
	if err := build(ctx); err != nil {
		fmt.Fprintln(errOut, renderError(err))
	}

	if root.configFile != "" {
		watcher, err := sitenav.WatchConfig(root.configFile)
		if err != nil {
			return err
		}
		watcher.OnError(func(err error) {
			fmt.Fprintln(errOut, renderError(err))
		})
		watcher.OnChange(func(next sitenav.Config) {
			root.apply(&next)
			flags.apply(&next)
			if next.Markdown.ContentDir != cfg.Markdown.ContentDir {
				fmt.Fprintln(errOut, renderError(fmt.Errorf("content_dir changes need a restart, keeping %s", cfg.Markdown.ContentDir)))
				next.Markdown.ContentDir = cfg.Markdown.ContentDir
			}
			rebuilt, err := sitenav.New(next, observer)
			if err != nil {
				fmt.Fprintln(errOut, renderError(err))
				return
			}
			live.swap(rebuilt)
			if err := build(ctx); err != nil {
				fmt.Fprintln(errOut, renderError(err))
			}
		})
		watcher.Start()
	}

	return generator.Watch(ctx, cfg.Markdown.ContentDir, generator.WatchOptions{
		Debounce: cfg.Generator.Debounce,
		Logger:   module.Logger("sitenav.watch"),
	}, build)
}
