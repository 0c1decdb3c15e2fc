package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitenav"
)

// version is set at build time.
var version = "dev"

type rootOptions struct {
	configFile  string
	logLevel    string
	logFormat   string
	logProvider string
	quiet       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sitenav",
		Short: "Build column navigation for hierarchical sites",
		Long: `sitenav reads a tree of pages, groups the category and article pages into
depth columns and resolves, for every page, the columns, selections and
breadcrumbs a template needs to render its navigation.

Pages come from a markdown content directory, a database populated with
"sitenav import", or an in-memory collection when embedded as a library.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("sitenav %s\n", version))

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./sitenav.yaml when present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "go-logger format: json, console or pretty")
	flags.StringVar(&opts.logProvider, "log-provider", "", "logger backend: console or gologger")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "disable runtime logging")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newImportCmd(opts),
		newShowCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// load reads the config file and environment, then applies the global flags.
func (o *rootOptions) load() (sitenav.Config, error) {
	cfg, err := sitenav.LoadConfig(o.configFile)
	if err != nil {
		return cfg, err
	}
	o.apply(&cfg)
	return cfg, nil
}

func (o *rootOptions) apply(cfg *sitenav.Config) {
	if strings.TrimSpace(o.logLevel) != "" {
		cfg.Logging.Level = o.logLevel
	}
	if strings.TrimSpace(o.logFormat) != "" {
		cfg.Logging.Format = o.logFormat
	}
	if strings.TrimSpace(o.logProvider) != "" {
		cfg.Logging.Provider = o.logProvider
	}
	if o.quiet {
		cfg.Features.Logger = false
	}
}

// sourceFlags are shared by the commands that read pages.
type sourceFlags struct {
	source     string
	contentDir string
	dsn        string
	driver     string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "page source: markdown or bun")
	cmd.Flags().StringVar(&f.contentDir, "content-dir", "", "markdown content directory")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "database DSN for the bun source")
	cmd.Flags().StringVar(&f.driver, "driver", "", "database driver: sqlite3 or postgres")
}

func (f *sourceFlags) apply(cfg *sitenav.Config) {
	if f.source != "" {
		cfg.Source.Provider = f.source
	}
	if f.contentDir != "" {
		cfg.Markdown.ContentDir = f.contentDir
	}
	if f.dsn != "" {
		cfg.Storage.DSN = f.dsn
	}
	if f.driver != "" {
		cfg.Storage.Driver = f.driver
	}
}
