package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitenav/internal/navigation"
)

// Record is the persisted form of a page.
type Record struct {
	bun.BaseModel `bun:"table:sitenav_pages,alias:sp"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Address     string    `bun:"address,notnull,unique" json:"address"`
	Layout      string    `bun:"layout" json:"layout"`
	Title       string    `bun:"title" json:"title"`
	Description string    `bun:"description" json:"description"`
	SortOrder   int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	Body        string    `bun:"body" json:"body"`
	SourcePath  string    `bun:"source_path" json:"source_path"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Page converts the record to the navigation input shape.
func (r *Record) Page() navigation.Page {
	page := navigation.Page{
		Address:     r.Address,
		Layout:      r.Layout,
		Title:       r.Title,
		Description: r.Description,
		Order:       r.SortOrder,
		Source:      r.SourcePath,
	}
	if r.Body != "" {
		page.Body = []byte(r.Body)
	}
	if page.Source == "" && r.ID != uuid.Nil {
		page.Source = r.ID.String()
	}
	return page
}

// apply copies the page fields onto the record.
func (r *Record) apply(page navigation.Page) {
	r.Address = page.Address
	r.Layout = page.Layout
	r.Title = page.Title
	r.Description = page.Description
	r.SortOrder = page.Order
	r.Body = string(page.Body)
	r.SourcePath = page.Source
}
