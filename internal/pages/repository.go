package pages

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrPageNotFound is matched by every PageNotFoundError.
var ErrPageNotFound = errors.New("pages: page not found")

// PageNotFoundError reports a missing address.
type PageNotFoundError struct {
	Address string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("pages: page %q not found", e.Address)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}

// NewPageRepository creates the generic repository for page records, keyed by
// address.
func NewPageRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(record *Record) uuid.UUID {
			return record.ID
		},
		SetID: func(record *Record, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "address"
		},
		GetIdentifierValue: func(record *Record) string {
			return record.Address
		},
	})
}

// CreateSchema creates the page table when it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("pages: create table: %w", err)
	}
	return nil
}
