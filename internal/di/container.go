package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitenav/internal/commands"
	navigationcmd "github.com/goliatone/go-sitenav/internal/commands/navigation"
	pagescmd "github.com/goliatone/go-sitenav/internal/commands/pages"
	"github.com/goliatone/go-sitenav/internal/generator"
	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/internal/logging/console"
	"github.com/goliatone/go-sitenav/internal/logging/gologger"
	"github.com/goliatone/go-sitenav/internal/markdown"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/internal/pages"
	"github.com/goliatone/go-sitenav/internal/runtimeconfig"
	"github.com/goliatone/go-sitenav/internal/storage"
	"github.com/goliatone/go-sitenav/internal/validation"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// Container wires the runtime services from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	dbMu   sync.Mutex
	db     *bun.DB
	ownsDB bool
	repo   *pages.BunRepository

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	contentFS   fs.FS
	memoryPages []navigation.Page
	validator   *validation.PageValidator

	source     pages.Source
	navigation *navigation.Service
	renderer   *markdown.Renderer
	generator  *generator.Service

	generateObserver navigationcmd.ResultObserver
	importObserver   pagescmd.ResultObserver
	generateHandler  *navigationcmd.GenerateHandler
	importHandler    *pagescmd.ImportHandler
}

// Option customises the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database for the bun source and importer. The
// container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
		c.ownsDB = false
	}
}

// WithCache overrides the cache used when Config.Cache.Enabled is set.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithContentFS replaces the markdown content directory with filesystem.
func WithContentFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.contentFS = filesystem
	}
}

// WithPages seeds the memory source.
func WithPages(list ...navigation.Page) Option {
	return func(c *Container) {
		c.memoryPages = append(c.memoryPages, list...)
	}
}

// WithGenerateObserver receives every successful generation result.
func WithGenerateObserver(observer navigationcmd.ResultObserver) Option {
	return func(c *Container) {
		c.generateObserver = observer
	}
}

// WithImportObserver receives every successful import result.
func WithImportObserver(observer pagescmd.ResultObserver) Option {
	return func(c *Container) {
		c.importObserver = observer
	}
}

// NewContainer validates cfg and builds every service. Databases are opened
// lazily on first use.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureValidator(); err != nil {
		return nil, err
	}
	if err := c.configureCache(); err != nil {
		return nil, err
	}
	c.configureSource()

	c.navigation = navigation.NewService(navigation.Config{
		EligibleLayouts: cfg.Navigation.EligibleLayouts,
		IndexBasename:   cfg.Navigation.IndexBasename,
		Workers:         cfg.Navigation.Workers,
	}, navigation.WithLogger(logging.NavigationLogger(c.loggerProvider)))

	c.renderer = markdown.NewRenderer(markdown.RenderOptions{
		Extensions: cfg.Markdown.Parser.Extensions,
		HardWraps:  cfg.Markdown.Parser.HardWraps,
		SafeMode:   cfg.Markdown.Parser.SafeMode,
	})

	c.generator = generator.NewService(generator.Config{
		OutputDir:     cfg.Generator.OutputDir,
		Format:        cfg.GeneratorFormat(),
		DryRun:        cfg.Generator.DryRun,
		RenderBodies:  cfg.Generator.RenderBodies,
		RenderTimeout: cfg.Generator.RenderTimeout,
	}, generator.Dependencies{
		Source:     c.source,
		Navigation: c.navigation,
		Renderer:   c.renderer,
		Logger:     logging.GeneratorLogger(c.loggerProvider),
	})

	c.generateHandler = navigationcmd.NewGenerateHandler(
		c.generator,
		commands.CommandLogger(c.loggerProvider, "navigation"),
		c.generateObserver,
	)
	c.importHandler = pagescmd.NewImportHandler(
		storeFunc{c: c},
		c.openMarkdownDir,
		commands.CommandLogger(c.loggerProvider, "pages"),
		c.importObserver,
	)

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: level})
	}
	return nil
}

func (c *Container) configureValidator() error {
	if !c.Config.Features.SchemaChecks {
		return nil
	}
	validator, err := validation.DefaultPageValidator()
	if err != nil {
		return fmt.Errorf("di: frontmatter schema: %w", err)
	}
	c.validator = validator
	return nil
}

func (c *Container) configureCache() error {
	if !c.Config.Cache.Enabled {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("di: cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureSource() {
	switch c.Config.SourceProvider() {
	case runtimeconfig.SourceBun:
		c.source = storeFunc{c: c}
	case runtimeconfig.SourceMemory:
		c.source = pages.NewMemorySource(c.memoryPages...)
	default:
		filesystem := c.contentFS
		if filesystem == nil {
			filesystem = os.DirFS(c.Config.Markdown.ContentDir)
		}
		c.source = c.markdownSource(filesystem, c.Config.Markdown.ContentDir)
	}
}

func (c *Container) markdownSource(filesystem fs.FS, dir string) *markdown.Source {
	logger := logging.WithSourceContext(logging.SourceLogger(c.loggerProvider), "markdown", dir)
	return markdown.NewSource(filesystem, markdown.SourceConfig{
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
	},
		markdown.WithLogger(logger),
		markdown.WithValidator(c.validator),
		markdown.WithSlugLint(c.Config.Features.SlugLint),
	)
}

func (c *Container) openMarkdownDir(dir string) (pages.Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return c.markdownSource(os.DirFS(dir), dir), nil
}

// PageRepository opens the configured database on first use and returns the
// bun page repository.
func (c *Container) PageRepository(ctx context.Context) (*pages.BunRepository, error) {
	c.dbMu.Lock()
	defer c.dbMu.Unlock()

	if c.repo != nil {
		return c.repo, nil
	}
	logger := logging.StorageLogger(c.loggerProvider)
	if c.db == nil {
		db, err := storage.Open(ctx, storage.Config{
			Driver: c.Config.Storage.Driver,
			DSN:    c.Config.Storage.DSN,
		}, logger)
		if err != nil {
			return nil, err
		}
		c.db = db
		c.ownsDB = true
	}
	if err := pages.CreateSchema(ctx, c.db); err != nil {
		return nil, err
	}

	opts := []pages.BunOption{pages.WithRepositoryLogger(logger)}
	if c.cacheService != nil {
		opts = append(opts, pages.WithCache(c.cacheService, c.keySerializer))
	}
	c.repo = pages.NewBunRepository(c.db, opts...)
	return c.repo, nil
}

// LoggerProvider returns the active provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Source returns the page source selected by Config.Source.Provider.
func (c *Container) Source() pages.Source { return c.source }

// NavigationService returns the column builder and resolver service.
func (c *Container) NavigationService() *navigation.Service { return c.navigation }

// GeneratorService returns the manifest generator.
func (c *Container) GeneratorService() *generator.Service { return c.generator }

// Renderer returns the markdown body renderer.
func (c *Container) Renderer() *markdown.Renderer { return c.renderer }

// GenerateHandler returns the generate command handler.
func (c *Container) GenerateHandler() *navigationcmd.GenerateHandler { return c.generateHandler }

// ImportHandler returns the import command handler.
func (c *Container) ImportHandler() *pagescmd.ImportHandler { return c.importHandler }

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	c.dbMu.Lock()
	defer c.dbMu.Unlock()
	if c.db == nil || !c.ownsDB {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.repo = nil
	return err
}

// storeFunc resolves the repository on each call so the database is only
// opened by commands that need it.
type storeFunc struct {
	c *Container
}

func (s storeFunc) List(ctx context.Context) ([]navigation.Page, error) {
	repo, err := s.c.PageRepository(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s storeFunc) Upsert(ctx context.Context, page navigation.Page) (*pages.Record, bool, error) {
	repo, err := s.c.PageRepository(ctx)
	if err != nil {
		return nil, false, err
	}
	return repo.Upsert(ctx, page)
}

func (s storeFunc) Records(ctx context.Context) ([]*pages.Record, error) {
	repo, err := s.c.PageRepository(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Records(ctx)
}

func (s storeFunc) Delete(ctx context.Context, address string) error {
	repo, err := s.c.PageRepository(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, address)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
