package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SITENAV_GENERATOR_FORMAT.
const EnvPrefix = "SITENAV"

// Load reads configuration from path (or sitenav.yaml in the working
// directory when path is empty), applies SITENAV_ environment overrides on top
// of DefaultConfig and validates the result. A missing default file is not an
// error.
func Load(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sitenav")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("sitenav config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("sitenav config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"navigation.eligible_layouts": cfg.Navigation.EligibleLayouts,
		"navigation.index_basename":   cfg.Navigation.IndexBasename,
		"navigation.workers":          cfg.Navigation.Workers,
		"source.provider":             cfg.Source.Provider,
		"markdown.content_dir":        cfg.Markdown.ContentDir,
		"markdown.pattern":            cfg.Markdown.Pattern,
		"markdown.recursive":          cfg.Markdown.Recursive,
		"markdown.parser.extensions":  cfg.Markdown.Parser.Extensions,
		"markdown.parser.hard_wraps":  cfg.Markdown.Parser.HardWraps,
		"markdown.parser.safe_mode":   cfg.Markdown.Parser.SafeMode,
		"storage.driver":              cfg.Storage.Driver,
		"storage.dsn":                 cfg.Storage.DSN,
		"cache.enabled":               cfg.Cache.Enabled,
		"cache.ttl":                   cfg.Cache.TTL,
		"generator.output_dir":        cfg.Generator.OutputDir,
		"generator.format":            cfg.Generator.Format,
		"generator.dry_run":           cfg.Generator.DryRun,
		"generator.render_bodies":     cfg.Generator.RenderBodies,
		"generator.debounce":          cfg.Generator.Debounce,
		"generator.render_timeout":    cfg.Generator.RenderTimeout,
		"logging.provider":            cfg.Logging.Provider,
		"logging.level":               cfg.Logging.Level,
		"logging.format":              cfg.Logging.Format,
		"logging.add_source":          cfg.Logging.AddSource,
		"logging.focus":               cfg.Logging.Focus,
		"features.logger":             cfg.Features.Logger,
		"features.schema_checks":      cfg.Features.SchemaChecks,
		"features.slug_lint":          cfg.Features.SlugLint,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Watcher keeps a validated Config in sync with its backing file.
type Watcher struct {
	mu        sync.RWMutex
	v         *viper.Viper
	current   Config
	callbacks []func(Config)
	onError   func(error)
}

// NewWatcher loads path and prepares hot reloading. Call Start to begin
// watching the file.
func NewWatcher(path string) (*Watcher, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Watcher{v: v, current: cfg}, nil
}

// Current returns the last valid configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers fn to run after every successful reload.
func (w *Watcher) OnChange(fn func(Config)) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// OnError registers fn to receive reload failures. The previous config stays
// active when a reload fails.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Start begins watching the config file.
func (w *Watcher) Start() {
	w.v.OnConfigChange(w.handle)
	w.v.WatchConfig()
}

func (w *Watcher) handle(event fsnotify.Event) {
	cfg, err := decode(w.v)

	w.mu.Lock()
	if err != nil {
		onError := w.onError
		w.mu.Unlock()
		if onError != nil {
			onError(fmt.Errorf("sitenav config: reload %s: %w", event.Name, err))
		}
		return
	}
	w.current = cfg
	callbacks := make([]func(Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}
