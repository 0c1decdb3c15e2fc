package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/internal/pages"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

var (
	// ErrSourceRequired indicates the service was built without a page source.
	ErrSourceRequired = errors.New("generator: page source is required")
	// ErrNavigationRequired indicates the service was built without a navigation service.
	ErrNavigationRequired = errors.New("generator: navigation service is required")
	// ErrFormatUnsupported is returned for manifest formats other than json and yaml.
	ErrFormatUnsupported = errors.New("generator: unsupported manifest format")
	// ErrOutputDirRequired is returned when a non dry run build has nowhere to write.
	ErrOutputDirRequired = errors.New("generator: output directory is required")
)

// BodyRenderer converts a page body to HTML.
type BodyRenderer interface {
	Render(markdown []byte) ([]byte, error)
}

// Config captures the generator defaults. BuildOptions override them per run.
type Config struct {
	OutputDir     string
	Format        string
	DryRun        bool
	RenderBodies  bool
	RenderTimeout time.Duration
}

// BuildOptions narrows a single run. Empty fields fall back to Config.
type BuildOptions struct {
	OutputDir string
	Format    string
	DryRun    bool
}

// BuildResult reports what a run produced.
type BuildResult struct {
	Pages    []RenderContext
	Eligible int
	Default  int
	// Gaps counts pages whose ancestor chain skipped a missing column.
	Gaps     int
	Duration time.Duration
	// Output is the manifest path, empty on dry runs.
	Output string
	DryRun bool
}

// Dependencies lists the collaborators of the generator.
type Dependencies struct {
	Source     pages.Source
	Navigation *navigation.Service
	Renderer   BodyRenderer
	Logger     interfaces.Logger
}

// Service runs full generation passes: list, build, resolve, render, write.
type Service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithNow overrides the clock used for timestamps and durations.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a generator with cfg and deps.
func NewService(cfg Config, deps Dependencies, opts ...Option) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	s := &Service{cfg: cfg, deps: deps, logger: logger, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Build performs one full pass. Every pass rebuilds the column index from the
// complete page collection.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Source == nil {
		return nil, ErrSourceRequired
	}
	if s.deps.Navigation == nil {
		return nil, ErrNavigationRequired
	}

	format := s.cfg.Format
	if strings.TrimSpace(opts.Format) != "" {
		format = opts.Format
	}
	format = normalizeFormat(format)
	if format != "json" && format != "yaml" {
		return nil, fmt.Errorf("%w: %q", ErrFormatUnsupported, format)
	}
	outputDir := s.cfg.OutputDir
	if strings.TrimSpace(opts.OutputDir) != "" {
		outputDir = opts.OutputDir
	}
	dryRun := s.cfg.DryRun || opts.DryRun
	if !dryRun && strings.TrimSpace(outputDir) == "" {
		return nil, ErrOutputDirRequired
	}

	start := s.now()

	list, err := s.deps.Source.List(ctx)
	if err != nil {
		s.logger.Error("generator.build.source_failed", "error", err)
		return nil, fmt.Errorf("generator: list pages: %w", err)
	}

	result, err := s.deps.Navigation.Generate(ctx, list)
	if err != nil {
		s.logger.Error("generator.build.navigation_failed", "error", err)
		return nil, err
	}

	contexts, err := s.render(ctx, result.Pages)
	if err != nil {
		return nil, err
	}

	out := &BuildResult{
		Pages:    contexts,
		Eligible: result.Eligible,
		Default:  result.Default,
		DryRun:   dryRun,
	}
	for _, item := range result.Pages {
		if len(item.Gaps) > 0 {
			out.Gaps++
		}
	}

	manifest := Manifest{
		Version:     manifestVersion,
		GeneratedAt: start.UTC(),
		MinDepth:    result.Index.MinDepth,
		Columns:     len(result.Index.Columns),
		Pages:       contexts,
	}
	data, err := manifest.Marshal(format)
	if err != nil {
		return nil, err
	}

	target := ""
	if !dryRun {
		target = filepath.Join(outputDir, ManifestFilename(format))
	}
	if err := newArtifactWriter(dryRun).WriteFile(ctx, target, data); err != nil {
		s.logger.Error("generator.build.write_failed", "output", target, "error", err)
		return nil, err
	}
	out.Output = target
	out.Duration = s.now().Sub(start)

	s.logger.Info("generator.build.completed",
		"pages", len(contexts),
		"eligible", out.Eligible,
		"default", out.Default,
		"gaps", out.Gaps,
		"output", target,
		"dry_run", dryRun,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}

func (s *Service) render(ctx context.Context, items []navigation.PageNavigation) ([]RenderContext, error) {
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	indexer := s.deps.Navigation.Indexer()
	contexts := make([]RenderContext, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generator: render: %w", err)
		}

		var body []byte
		if s.cfg.RenderBodies && s.deps.Renderer != nil && len(item.Page.Body) > 0 {
			html, err := s.deps.Renderer.Render(item.Page.Body)
			if err != nil {
				s.logger.Error("generator.render.failed", "address", item.Page.Address, "error", err)
				return nil, fmt.Errorf("generator: render %s: %w", item.Page.Address, err)
			}
			body = html
		}

		linkPath := ""
		if entry, err := indexer.Index(item.Page.Address); err == nil {
			linkPath = "/" + entry.Key + "/"
		}
		contexts = append(contexts, newRenderContext(item, linkPath, body))
	}
	return contexts, nil
}
