package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/internal/validation"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// DefaultPattern matches the page files of a content tree.
const DefaultPattern = "*.markdown"

const sourceKind = "markdown"

// SourceConfig configures how pages are discovered within a content tree.
type SourceConfig struct {
	// Pattern is a basename glob. Several globs may be joined with "|".
	Pattern string
	// Recursive controls whether sub-directories are walked.
	Recursive bool
}

// Source lists the pages of a markdown content tree.
type Source struct {
	fs        fs.FS
	patterns  []string
	recursive bool
	validator *validation.PageValidator
	slugLint  bool
	logger    interfaces.Logger
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator checks every file's frontmatter against validator.
func WithValidator(validator *validation.PageValidator) SourceOption {
	return func(s *Source) {
		s.validator = validator
	}
}

// WithSlugLint warns about path segments that are not URL slugs.
func WithSlugLint(enabled bool) SourceOption {
	return func(s *Source) {
		s.slugLint = enabled
	}
}

// NewSource returns a Source rooted at filesystem.
func NewSource(filesystem fs.FS, cfg SourceConfig, opts ...SourceOption) *Source {
	s := &Source{
		fs:        filesystem,
		patterns:  splitPatterns(cfg.Pattern),
		recursive: cfg.Recursive,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List walks the tree and returns one page per matching file, ordered by path.
func (s *Source) List(ctx context.Context) ([]navigation.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []string
	err := fs.WalkDir(s.fs, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != "." && (!s.recursive || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if s.matches(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown source: walk: %w", err)
	}
	slices.Sort(files)

	pages := make([]navigation.Page, 0, len(files))
	for _, file := range files {
		page, err := s.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	s.logger.Debug("markdown.source.listed", "pages", len(pages))
	return pages, nil
}

// Load reads a single file relative to the source root.
func (s *Source) Load(ctx context.Context, file string) (navigation.Page, error) {
	if err := ctx.Err(); err != nil {
		return navigation.Page{}, err
	}

	file = path.Clean(strings.TrimPrefix(file, "/"))
	logger := logging.WithSourceContext(s.logger, sourceKind, file)

	data, err := fs.ReadFile(s.fs, file)
	if err != nil {
		return navigation.Page{}, fmt.Errorf("markdown source: read %s: %w", file, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		logger.Error("markdown.source.frontmatter_failed", "error", err)
		return navigation.Page{}, fmt.Errorf("markdown source: %s: %w", file, err)
	}

	if s.validator != nil {
		if err := s.validator.Validate(file, meta.Raw); err != nil {
			logger.Error("markdown.source.schema_failed", "error", err)
			return navigation.Page{}, err
		}
	}

	address := AddressFor(file)
	if s.slugLint {
		s.lint(logger, address)
	}

	return navigation.Page{
		Address:     address,
		Layout:      meta.Layout,
		Title:       meta.Title,
		Description: meta.Description,
		Order:       meta.Order,
		Body:        body,
		Source:      file,
	}, nil
}

// AddressFor maps a content file path to a page address by dropping the file
// extension. "animals/index.markdown" becomes "animals/index", which the path
// indexer then folds into its directory.
func AddressFor(file string) string {
	file = path.Clean(strings.TrimPrefix(file, "/"))
	return strings.TrimSuffix(file, path.Ext(file))
}

func (s *Source) lint(logger interfaces.Logger, address string) {
	for _, segment := range strings.Split(address, "/") {
		if segment == "" || slug.IsValid(segment) {
			continue
		}
		suggestion, err := slug.Normalize(segment)
		if err != nil {
			suggestion = ""
		}
		logger.Warn("markdown.source.segment_not_slug", "segment", segment, "suggestion", suggestion)
	}
}

func (s *Source) matches(file string) bool {
	base := path.Base(file)
	for _, pattern := range s.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func splitPatterns(pattern string) []string {
	var out []string
	for _, part := range strings.Split(pattern, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{DefaultPattern}
	}
	return out
}
