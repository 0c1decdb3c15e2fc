package pagescmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitenav/internal/commands"
	"github.com/goliatone/go-sitenav/internal/logging"
	"github.com/goliatone/go-sitenav/internal/navigation"
	"github.com/goliatone/go-sitenav/internal/pages"
	"github.com/goliatone/go-sitenav/pkg/interfaces"
)

const importOperation = "pages.import"

var (
	// ErrStoreRequired is returned when no page store is wired.
	ErrStoreRequired = errors.New("pages command: store is nil")
	// ErrSourceFactoryRequired is returned when no directory loader is wired.
	ErrSourceFactoryRequired = errors.New("pages command: source factory is nil")
)

var _ command.Commander[ImportCommand] = (*ImportHandler)(nil)

// Store persists imported pages. pages.BunRepository satisfies it.
type Store interface {
	Upsert(ctx context.Context, page navigation.Page) (*pages.Record, bool, error)
	Records(ctx context.Context) ([]*pages.Record, error)
	Delete(ctx context.Context, address string) error
}

// SourceFactory opens the page source rooted at directory.
type SourceFactory func(directory string) (pages.Source, error)

// ImportResult summarises one import.
type ImportResult struct {
	Created int
	Updated int
	Deleted int
	DryRun  bool
}

// ResultObserver receives the outcome of a successful import.
type ResultObserver func(ctx context.Context, result ImportResult)

// ImportHandler copies a content directory into the page store.
type ImportHandler struct {
	inner *commands.Handler[ImportCommand]
}

// NewImportHandler creates a handler writing to store. observer may be nil.
func NewImportHandler(store Store, open SourceFactory, logger interfaces.Logger, observer ResultObserver, opts ...commands.HandlerOption[ImportCommand]) *ImportHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportCommand) error {
		if store == nil {
			return ErrStoreRequired
		}
		if open == nil {
			return ErrSourceFactoryRequired
		}
		source, err := open(msg.Directory)
		if err != nil {
			return fmt.Errorf("pages command: open %s: %w", msg.Directory, err)
		}
		list, err := source.List(ctx)
		if err != nil {
			return err
		}

		existing, err := store.Records(ctx)
		if err != nil {
			return err
		}
		stored := make(map[string]struct{}, len(existing))
		for _, record := range existing {
			stored[record.Address] = struct{}{}
		}

		result := ImportResult{DryRun: msg.DryRun}
		seen := make(map[string]struct{}, len(list))
		for _, page := range list {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen[page.Address] = struct{}{}
			if msg.DryRun {
				if _, ok := stored[page.Address]; ok {
					result.Updated++
				} else {
					result.Created++
				}
				continue
			}
			_, created, err := store.Upsert(ctx, page)
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if msg.Prune {
			for _, record := range existing {
				if _, ok := seen[record.Address]; ok {
					continue
				}
				result.Deleted++
				if msg.DryRun {
					continue
				}
				if err := store.Delete(ctx, record.Address); err != nil {
					return err
				}
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"created_count": result.Created,
			"updated_count": result.Updated,
			"deleted_count": result.Deleted,
			"dry_run":       msg.DryRun,
		}).Info("pages.command.import.completed")
		if observer != nil {
			observer(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportCommand]{
		commands.WithLogger[ImportCommand](baseLogger),
		commands.WithOperation[ImportCommand](importOperation),
		commands.WithMessageFields[ImportCommand](func(msg ImportCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Prune {
				fields["prune"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ImportCommand].
func (h *ImportHandler) Execute(ctx context.Context, msg ImportCommand) error {
	return h.inner.Execute(ctx, msg)
}
