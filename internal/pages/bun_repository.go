package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

// BunRepository persists pages with go-repository-bun and doubles as a Source.
type BunRepository struct {
	repo   repository.Repository[*Record]
	now    func() time.Time
	newID  func() uuid.UUID
	logger interfaces.Logger
}

var _ Source = (*BunRepository)(nil)

// BunOption customises a BunRepository.
type BunOption func(*bunConfig)

type bunConfig struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	now          func() time.Time
	newID        func() uuid.UUID
	logger       interfaces.Logger
}

// WithCache wraps the repository with go-repository-cache.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) BunOption {
	return func(cfg *bunConfig) {
		cfg.cacheService = service
		cfg.serializer = serializer
	}
}

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) BunOption {
	return func(cfg *bunConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithIDGenerator overrides uuid generation for new records.
func WithIDGenerator(newID func() uuid.UUID) BunOption {
	return func(cfg *bunConfig) {
		if newID != nil {
			cfg.newID = newID
		}
	}
}

// WithRepositoryLogger sets the logger used for write diagnostics.
func WithRepositoryLogger(logger interfaces.Logger) BunOption {
	return func(cfg *bunConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewBunRepository creates a page repository on db.
func NewBunRepository(db *bun.DB, opts ...BunOption) *BunRepository {
	cfg := bunConfig{
		now:    time.Now,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	base := NewPageRepository(db)
	if cfg.cacheService != nil && cfg.serializer != nil {
		base = repositorycache.New(base, cfg.cacheService, cfg.serializer)
	}
	return &BunRepository{
		repo:   base,
		now:    cfg.now,
		newID:  cfg.newID,
		logger: cfg.logger,
	}
}

// Create inserts page as a new record.
func (r *BunRepository) Create(ctx context.Context, page navigation.Page) (*Record, error) {
	if err := validateAddress(page.Address); err != nil {
		return nil, err
	}
	now := r.now().UTC()
	record := &Record{ID: r.newID(), CreatedAt: now, UpdatedAt: now}
	record.apply(page)

	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("pages: create %q: %w", page.Address, err)
	}
	return created, nil
}

// Upsert inserts page or updates the record stored at the same address. The
// boolean reports whether a new record was created.
func (r *BunRepository) Upsert(ctx context.Context, page navigation.Page) (*Record, bool, error) {
	existing, err := r.GetByAddress(ctx, page.Address)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			created, createErr := r.Create(ctx, page)
			if createErr != nil {
				return nil, false, createErr
			}
			r.logger.Debug("pages.upsert.created", "address", page.Address, "id", created.ID.String())
			return created, true, nil
		}
		return nil, false, err
	}

	existing.apply(page)
	existing.UpdatedAt = r.now().UTC()
	updated, err := r.repo.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns(
			"layout",
			"title",
			"description",
			"sort_order",
			"body",
			"source_path",
			"updated_at",
		),
	)
	if err != nil {
		return nil, false, fmt.Errorf("pages: update %q: %w", page.Address, err)
	}
	r.logger.Debug("pages.upsert.updated", "address", page.Address, "id", existing.ID.String())
	return updated, false, nil
}

// GetByAddress loads the record stored at address.
func (r *BunRepository) GetByAddress(ctx context.Context, address string) (*Record, error) {
	record, err := r.repo.GetByIdentifier(ctx, address)
	if err != nil {
		return nil, mapRepositoryError(err, address)
	}
	return record, nil
}

// Delete removes the record stored at address.
func (r *BunRepository) Delete(ctx context.Context, address string) error {
	record, err := r.GetByAddress(ctx, address)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Record{ID: record.ID}); err != nil {
		return fmt.Errorf("pages: delete %q: %w", address, err)
	}
	return nil
}

// Records returns every record ordered by address then id.
func (r *BunRepository) Records(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.address ASC, ?TableAlias.id ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("pages: list: %w", err)
	}
	return records, nil
}

// List implements Source.
func (r *BunRepository) List(ctx context.Context) ([]navigation.Page, error) {
	records, err := r.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]navigation.Page, 0, len(records))
	for _, record := range records {
		out = append(out, record.Page())
	}
	return out, nil
}

func validateAddress(address string) error {
	if strings.Trim(address, "/ ") == "" {
		return &navigation.MalformedAddressError{Address: address}
	}
	return nil
}

func mapRepositoryError(err error, address string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Address: address}
	}
	return fmt.Errorf("pages: repository error: %w", err)
}
