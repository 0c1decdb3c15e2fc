package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNavigationWorkersInvalid     = errors.New("sitenav config: navigation workers must be zero or positive")
	ErrNavigationIndexBasename      = errors.New("sitenav config: navigation index basename must not contain a path separator")
	ErrSourceProviderUnknown        = errors.New("sitenav config: source provider is invalid")
	ErrMarkdownContentDirRequired   = errors.New("sitenav config: markdown content directory is required for the markdown source")
	ErrMarkdownPatternInvalid       = errors.New("sitenav config: markdown pattern is invalid")
	ErrStorageDriverUnknown         = errors.New("sitenav config: storage driver is invalid")
	ErrStorageDSNRequired           = errors.New("sitenav config: storage dsn is required for the bun source")
	ErrCacheTTLInvalid              = errors.New("sitenav config: cache ttl must be positive when cache is enabled")
	ErrCacheRequiresBunSource       = errors.New("sitenav config: cache is only supported by the bun source")
	ErrGeneratorOutputDirRequired   = errors.New("sitenav config: generator output directory is required unless dry run is set")
	ErrGeneratorFormatInvalid       = errors.New("sitenav config: generator format is invalid")
	ErrGeneratorDebounceInvalid     = errors.New("sitenav config: generator debounce must be zero or positive")
	ErrLoggingProviderRequired      = errors.New("sitenav config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown       = errors.New("sitenav config: logging provider is invalid")
	ErrLoggingLevelInvalid          = errors.New("sitenav config: logging level is invalid")
	ErrLoggingFormatInvalid         = errors.New("sitenav config: logging format is invalid")
	ErrNavigationEligibleLayoutsNil = errors.New("sitenav config: navigation eligible layouts must not contain blank entries")
)

const (
	SourceMarkdown = "markdown"
	SourceBun      = "bun"
	SourceMemory   = "memory"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config aggregates the runtime options of the navigation generator.
type Config struct {
	Navigation NavigationConfig `mapstructure:"navigation" yaml:"navigation"`
	Source     SourceConfig     `mapstructure:"source" yaml:"source"`
	Markdown   MarkdownConfig   `mapstructure:"markdown" yaml:"markdown"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Generator  GeneratorConfig  `mapstructure:"generator" yaml:"generator"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Features   Features         `mapstructure:"features" yaml:"features"`
}

// NavigationConfig drives the column builder and resolver.
type NavigationConfig struct {
	EligibleLayouts []string `mapstructure:"eligible_layouts" yaml:"eligible_layouts"`
	IndexBasename   string   `mapstructure:"index_basename" yaml:"index_basename"`
	Workers         int      `mapstructure:"workers" yaml:"workers"`
}

// SourceConfig selects where pages are read from.
type SourceConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
}

// MarkdownConfig captures filesystem and parser behaviour for markdown pages.
type MarkdownConfig struct {
	ContentDir string               `mapstructure:"content_dir" yaml:"content_dir"`
	Pattern    string               `mapstructure:"pattern" yaml:"pattern"`
	Recursive  bool                 `mapstructure:"recursive" yaml:"recursive"`
	Parser     MarkdownParserConfig `mapstructure:"parser" yaml:"parser"`
}

// MarkdownParserConfig toggles goldmark extensions and renderer options.
type MarkdownParserConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps" yaml:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode" yaml:"safe_mode"`
}

// StorageConfig configures the database behind the bun source.
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// CacheConfig wraps the bun page repository with go-repository-cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// GeneratorConfig controls manifest output.
type GeneratorConfig struct {
	OutputDir     string        `mapstructure:"output_dir" yaml:"output_dir"`
	Format        string        `mapstructure:"format" yaml:"format"`
	DryRun        bool          `mapstructure:"dry_run" yaml:"dry_run"`
	RenderBodies  bool          `mapstructure:"render_bodies" yaml:"render_bodies"`
	Debounce      time.Duration `mapstructure:"debounce" yaml:"debounce"`
	RenderTimeout time.Duration `mapstructure:"render_timeout" yaml:"render_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider" yaml:"provider"`
	Level     string   `mapstructure:"level" yaml:"level"`
	Format    string   `mapstructure:"format" yaml:"format"`
	AddSource bool     `mapstructure:"add_source" yaml:"add_source"`
	Focus     []string `mapstructure:"focus" yaml:"focus"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger       bool `mapstructure:"logger" yaml:"logger"`
	SchemaChecks bool `mapstructure:"schema_checks" yaml:"schema_checks"`
	SlugLint     bool `mapstructure:"slug_lint" yaml:"slug_lint"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Navigation: NavigationConfig{
			EligibleLayouts: []string{"category", "article"},
			IndexBasename:   "index",
			Workers:         0,
		},
		Source: SourceConfig{
			Provider: SourceMarkdown,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.markdown",
			Recursive:  true,
			Parser: MarkdownParserConfig{
				Extensions: []string{"gfm"},
			},
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file:sitenav.db?cache=shared&_fk=1",
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Generator: GeneratorConfig{
			OutputDir:    "dist",
			Format:       FormatJSON,
			RenderBodies: true,
			Debounce:     250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Logger:       true,
			SchemaChecks: true,
			SlugLint:     true,
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if cfg.Navigation.Workers < 0 {
		return ErrNavigationWorkersInvalid
	}
	if strings.ContainsAny(cfg.Navigation.IndexBasename, "/\\") {
		return fmt.Errorf("%w: %s", ErrNavigationIndexBasename, cfg.Navigation.IndexBasename)
	}
	for _, tag := range cfg.Navigation.EligibleLayouts {
		if strings.TrimSpace(tag) == "" {
			return ErrNavigationEligibleLayoutsNil
		}
	}

	provider := normalize(cfg.Source.Provider)
	if err := validation.Validate(provider,
		validation.Required,
		validation.In(SourceMarkdown, SourceBun, SourceMemory),
	); err != nil {
		return fmt.Errorf("%w: %q", ErrSourceProviderUnknown, cfg.Source.Provider)
	}

	if provider == SourceMarkdown {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
		if pattern := strings.TrimSpace(cfg.Markdown.Pattern); pattern != "" && !isSupportedPattern(pattern) {
			return fmt.Errorf("%w: %s", ErrMarkdownPatternInvalid, pattern)
		}
	}

	if provider == SourceBun {
		if err := validation.Validate(normalize(cfg.Storage.Driver), validation.In("sqlite3", "sqlite", "postgres", "pgx")); err != nil {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}

	if cfg.Cache.Enabled {
		if provider != SourceBun {
			return ErrCacheRequiresBunSource
		}
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	if !cfg.Generator.DryRun && strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if format := normalize(cfg.Generator.Format); format != "" {
		if err := validation.Validate(format, validation.In(FormatJSON, FormatYAML)); err != nil {
			return fmt.Errorf("%w: %s", ErrGeneratorFormatInvalid, cfg.Generator.Format)
		}
	}
	if cfg.Generator.Debounce < 0 {
		return ErrGeneratorDebounceInvalid
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// SourceProvider returns the normalised source provider name.
func (cfg Config) SourceProvider() string {
	return normalize(cfg.Source.Provider)
}

// GeneratorFormat returns the normalised manifest format, defaulting to json.
func (cfg Config) GeneratorFormat() string {
	if format := normalize(cfg.Generator.Format); format != "" {
		return format
	}
	return FormatJSON
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedPattern(pattern string) bool {
	switch pattern {
	case "*.markdown", "*.md", "*.md|*.markdown", "*.markdown|*.md":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
