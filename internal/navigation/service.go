package navigation

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// Config captures the navigation options exposed to hosts.
type Config struct {
	EligibleLayouts []string
	IndexBasename   string
	Workers         int
}

// DefaultConfig returns the stock eligible layouts and index basename.
func DefaultConfig() Config {
	return Config{
		EligibleLayouts: DefaultEligibleLayouts(),
		IndexBasename:   DefaultIndexBasename,
	}
}

// PageNavigation is the navigation computed for one page of the pass.
type PageNavigation struct {
	Page       Page
	Kind       LayoutKind
	Eligible   bool
	Path       string
	LinkPath   string
	Navigation Navigation
	Gaps       []int
}

// Result is the outcome of a full generation pass.
type Result struct {
	Index    Index
	Pages    []PageNavigation
	Eligible int
	Default  int
	Duration time.Duration
}

// Service runs the build and resolve steps over a full page collection.
type Service struct {
	indexer  PathIndexer
	policy   Policy
	builder  ColumnBuilder
	resolver Resolver
	workers  int
	logger   interfaces.Logger
	now      func() time.Time
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger injects the logger used for pass diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger == nil {
			s.logger = logging.NoOp()
			return
		}
		s.logger = logger
	}
}

// WithClock overrides the clock used to measure pass duration.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a navigation Service from cfg.
func NewService(cfg Config, opts ...ServiceOption) *Service {
	indexer := NewPathIndexer(cfg.IndexBasename)
	policy := NewPolicy(cfg.EligibleLayouts...)
	s := &Service{
		indexer:  indexer,
		policy:   policy,
		builder:  NewColumnBuilder(indexer, policy),
		resolver: NewResolver(indexer, policy),
		workers:  cfg.Workers,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Indexer exposes the path indexer used by the service.
func (s *Service) Indexer() PathIndexer {
	return s.indexer
}

// Policy exposes the eligibility policy used by the service.
func (s *Service) Policy() Policy {
	return s.policy
}

// Build exposes the column building step on its own.
func (s *Service) Build(pages []Page) (Index, error) {
	return s.builder.Build(pages)
}

// Generate builds the column index from pages and resolves every page against
// it. Output order matches input order regardless of worker count.
func (s *Service) Generate(ctx context.Context, pages []Page) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := s.now()

	index, err := s.builder.Build(pages)
	if err != nil {
		s.logger.Error("navigation.build.failed", "error", err)
		return nil, err
	}
	if index.Empty() {
		s.logger.Debug("navigation.build.empty_eligible_set", "pages", len(pages))
	}
	logging.WithFields(s.logger, map[string]any{
		"min_depth": index.MinDepth,
		"columns":   len(index.Columns),
	}).Debug("navigation.build.completed")

	results := make([]PageNavigation, len(pages))
	if err := s.resolveAll(ctx, pages, index, results); err != nil {
		return nil, err
	}

	out := &Result{
		Index: index,
		Pages: results,
	}
	for _, item := range results {
		if item.Eligible {
			out.Eligible++
		} else {
			out.Default++
		}
	}
	out.Duration = s.now().Sub(start)

	s.logger.Info("navigation.generate.completed",
		"pages", len(pages),
		"eligible", out.Eligible,
		"default", out.Default,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}

// Resolve computes navigation for a single page against a prebuilt index.
// Ineligible pages receive the default navigation.
func (s *Service) Resolve(page Page, index Index) (PageNavigation, error) {
	item := PageNavigation{
		Page:     page,
		Kind:     ClassifyLayout(page.Layout),
		Eligible: s.policy.Eligible(page.Layout),
	}
	if !item.Eligible {
		item.Navigation = DefaultFor(index.Columns)
		return item, nil
	}

	entry, err := s.indexer.Index(page.Address)
	if err != nil {
		return PageNavigation{}, withSource(err, page.Source)
	}
	item.Path = entry.Key
	item.LinkPath = "/" + entry.Key + "/"

	resolution, err := s.resolver.Resolve(page, index)
	if err != nil {
		return PageNavigation{}, err
	}
	item.Navigation = resolution.Navigation
	item.Gaps = resolution.Gaps
	if len(item.Gaps) > 0 {
		s.logger.Warn("navigation.resolve.missing_ancestor",
			"address", page.Address,
			"columns", item.Gaps,
		)
	}
	return item, nil
}

func (s *Service) resolveAll(ctx context.Context, pages []Page, index Index, results []PageNavigation) error {
	workers := s.effectiveWorkers(len(pages))
	if workers <= 1 {
		for i, page := range pages {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := s.Resolve(page, index)
			if err != nil {
				return err
			}
			results[i] = item
		}
		return nil
	}

	jobs := make(chan int)
	errs := make([]error, len(pages))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				item, err := s.Resolve(pages[i], index)
				if err != nil {
					errs[i] = err
					continue
				}
				results[i] = item
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range pages {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return ctxErr
	}
	for _, err := range errs {
		if err != nil {
			return errors.Join(errs...)
		}
	}
	return nil
}

func (s *Service) effectiveWorkers(pages int) int {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pages > 0 && workers > pages {
		return pages
	}
	return workers
}
