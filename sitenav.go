package sitenav

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"

	navigationcmd "github.com/goliatone/go-sitenav/internal/commands/navigation"
	pagescmd "github.com/goliatone/go-sitenav/internal/commands/pages"
	"github.com/goliatone/go-sitenav/internal/di"
	"github.com/goliatone/go-sitenav/internal/generator"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/internal/pages"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// ErrAddressNotFound is returned by Navigate when no page has the address.
var ErrAddressNotFound = errors.New("sitenav: address not found")

// ErrMalformedAddress marks addresses without any usable path component.
var ErrMalformedAddress = navigation.ErrMalformedAddress

type (
	Page           = navigation.Page
	PageView       = navigation.PageView
	Column         = navigation.Column
	Navigation     = navigation.Navigation
	PageNavigation = navigation.PageNavigation
	Index          = navigation.Index

	BuildResult   = generator.BuildResult
	RenderContext = generator.RenderContext
	Manifest      = generator.Manifest

	GenerateCommand = navigationcmd.GenerateCommand
	ImportCommand   = pagescmd.ImportCommand
	ImportResult    = pagescmd.ImportResult

	PageSource = pages.Source
	Option     = di.Option
)

var (
	WithLoggerProvider   = di.WithLoggerProvider
	WithBunDB            = di.WithBunDB
	WithCache            = di.WithCache
	WithContentFS        = di.WithContentFS
	WithPages            = di.WithPages
	WithGenerateObserver = di.WithGenerateObserver
	WithImportObserver   = di.WithImportObserver
)

// Module is the top level navigation runtime.
type Module struct {
	container *di.Container
}

// New validates cfg and wires a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Logger returns a logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.LoggerProvider().GetLogger(name)
}

// Generate runs one navigation pass and writes the manifest.
func (m *Module) Generate(ctx context.Context, msg GenerateCommand) error {
	return m.container.GenerateHandler().Execute(ctx, msg)
}

// Import loads a markdown directory into the configured database.
func (m *Module) Import(ctx context.Context, msg ImportCommand) error {
	return m.container.ImportHandler().Execute(ctx, msg)
}

// Build runs a generation pass directly and returns its result.
func (m *Module) Build(ctx context.Context, opts generator.BuildOptions) (*BuildResult, error) {
	return m.container.GeneratorService().Build(ctx, opts)
}

// Navigate resolves the navigation of the page at address against the full
// page collection. The address matches a page either verbatim or by its
// normalised path, so "animals/beetles" finds "animals/beetles/index".
func (m *Module) Navigate(ctx context.Context, address string) (*PageNavigation, error) {
	list, err := m.container.Source().List(ctx)
	if err != nil {
		return nil, err
	}
	svc := m.container.NavigationService()
	index, err := svc.Build(list)
	if err != nil {
		return nil, err
	}
	page, ok := findPage(list, address, svc.Indexer())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, address)
	}
	resolved, err := svc.Resolve(page, index)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

func findPage(list []Page, address string, indexer navigation.PathIndexer) (Page, bool) {
	for _, page := range list {
		if page.Address == address {
			return page, true
		}
	}
	want, err := indexer.Index(address)
	if err != nil {
		return Page{}, false
	}
	for _, page := range list {
		entry, err := indexer.Index(page.Address)
		if err == nil && entry.Key == want.Key {
			return page, true
		}
	}
	return Page{}, false
}

// Subscribe registers the command handlers with the go-command dispatcher.
// The returned func removes them again.
func (m *Module) Subscribe() func() {
	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand[GenerateCommand](m.container.GenerateHandler()),
		dispatcher.SubscribeCommand[ImportCommand](m.container.ImportHandler()),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
