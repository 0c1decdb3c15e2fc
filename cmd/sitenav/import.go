package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitenav"
)

type importFlags struct {
	dsn    string
	driver string
	prune  bool
	dryRun bool
}

func newImportCmd(root *rootOptions) *cobra.Command {
	flags := &importFlags{}
	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Load a markdown directory into the page database",
		Long: `Import walks a markdown content directory and upserts one page record per
file, keyed by address. Use --prune to remove records whose file is gone.
The directory defaults to markdown.content_dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if flags.dsn != "" {
				cfg.Storage.DSN = flags.dsn
			}
			if flags.driver != "" {
				cfg.Storage.Driver = flags.driver
			}
			directory := cfg.Markdown.ContentDir
			if len(args) == 1 {
				directory = args[0]
			}

			out := cmd.OutOrStdout()
			module, err := sitenav.New(cfg, sitenav.WithImportObserver(func(_ context.Context, result sitenav.ImportResult) {
				renderImport(out, result)
			}))
			if err != nil {
				return err
			}
			defer module.Close()

			return module.Import(cmd.Context(), sitenav.ImportCommand{
				Directory: directory,
				Prune:     flags.prune,
				DryRun:    flags.dryRun,
			})
		},
	}
	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "database DSN (overrides storage.dsn)")
	cmd.Flags().StringVar(&flags.driver, "driver", "", "database driver: sqlite3 or postgres")
	cmd.Flags().BoolVar(&flags.prune, "prune", false, "delete records whose markdown file no longer exists")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "count changes without writing")
	return cmd
}
