// Package pages provides the page sources the navigation pass reads from:
// a fixed in-memory collection and a bun backed repository.
package pages

import (
	"context"
	"slices"

	"github.com/goliatone/go-sitenav/internal/navigation"
)

// Source yields the full page collection for one generation pass. The order
// of the returned slice is the input order seen by the column builder.
type Source interface {
	List(ctx context.Context) ([]navigation.Page, error)
}

// MemorySource serves a fixed page collection.
type MemorySource struct {
	pages []navigation.Page
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource copies pages into a new source.
func NewMemorySource(pages ...navigation.Page) *MemorySource {
	return &MemorySource{pages: clonePages(pages)}
}

// List returns a copy of the configured pages.
func (m *MemorySource) List(ctx context.Context) ([]navigation.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return clonePages(m.pages), nil
}

func clonePages(in []navigation.Page) []navigation.Page {
	out := slices.Clone(in)
	for i := range out {
		out[i].Body = slices.Clone(out[i].Body)
	}
	if out == nil {
		out = []navigation.Page{}
	}
	return out
}
