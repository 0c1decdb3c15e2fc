package generator

import (
	"github.com/goliatone/go-sitenav/internal/navigation"
)

// RenderContext is the per-page data handed to templates and written to the
// manifest.
type RenderContext struct {
	Address     string                `json:"address" yaml:"address"`
	Layout      string                `json:"layout" yaml:"layout"`
	Kind        string                `json:"kind" yaml:"kind"`
	Eligible    bool                  `json:"eligible" yaml:"eligible"`
	Title       string                `json:"title" yaml:"title"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int                   `json:"order" yaml:"order"`
	LinkPath    string                `json:"link_path,omitempty" yaml:"link_path,omitempty"`
	Source      string                `json:"source,omitempty" yaml:"source,omitempty"`
	Columns     []navigation.Column   `json:"columns" yaml:"columns"`
	Breadcrumbs []navigation.PageView `json:"breadcrumbs" yaml:"breadcrumbs"`
	Gaps        []int                 `json:"gaps,omitempty" yaml:"gaps,omitempty"`
	BodyHTML    string                `json:"body_html,omitempty" yaml:"body_html,omitempty"`
}

func newRenderContext(item navigation.PageNavigation, linkPath string, body []byte) RenderContext {
	page := item.Page
	if item.LinkPath != "" {
		linkPath = item.LinkPath
	}
	return RenderContext{
		Address:     page.Address,
		Layout:      page.Layout,
		Kind:        item.Kind.String(),
		Eligible:    item.Eligible,
		Title:       page.Title,
		Description: page.Description,
		Order:       page.Order,
		LinkPath:    linkPath,
		Source:      page.Source,
		Columns:     item.Navigation.Columns,
		Breadcrumbs: item.Navigation.Breadcrumbs,
		Gaps:        item.Gaps,
		BodyHTML:    string(body),
	}
}
