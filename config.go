package sitenav

import "github.com/goliatone/go-sitenav/internal/runtimeconfig"

var (
	ErrNavigationWorkersInvalid     = runtimeconfig.ErrNavigationWorkersInvalid
	ErrNavigationIndexBasename      = runtimeconfig.ErrNavigationIndexBasename
	ErrNavigationEligibleLayoutsNil = runtimeconfig.ErrNavigationEligibleLayoutsNil
	ErrSourceProviderUnknown        = runtimeconfig.ErrSourceProviderUnknown
	ErrMarkdownContentDirRequired   = runtimeconfig.ErrMarkdownContentDirRequired
	ErrMarkdownPatternInvalid       = runtimeconfig.ErrMarkdownPatternInvalid
	ErrStorageDriverUnknown         = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired           = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid              = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBunSource       = runtimeconfig.ErrCacheRequiresBunSource
	ErrGeneratorOutputDirRequired   = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorFormatInvalid       = runtimeconfig.ErrGeneratorFormatInvalid
	ErrGeneratorDebounceInvalid     = runtimeconfig.ErrGeneratorDebounceInvalid
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	SourceMarkdown = runtimeconfig.SourceMarkdown
	SourceBun      = runtimeconfig.SourceBun
	SourceMemory   = runtimeconfig.SourceMemory
)

type (
	Config               = runtimeconfig.Config
	NavigationConfig     = runtimeconfig.NavigationConfig
	SourceConfig         = runtimeconfig.SourceConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
	ConfigWatcher        = runtimeconfig.Watcher
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, the optional config file at path and SITENAV_*
// environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}

// WatchConfig loads path and reloads it whenever the file changes.
func WatchConfig(path string) (*ConfigWatcher, error) {
	return runtimeconfig.NewWatcher(path)
}
