package navigation

// Page is the read-only input record supplied by a page source.
type Page struct {
	Address     string
	Layout      string
	Title       string
	Description string
	// Order is carried through to views but is reserved: sorting never consults it.
	Order int
	// Body holds the raw markdown body when the source provides one.
	Body []byte
	// Source identifies where the record came from (file path, record id).
	Source string
}

// PathEntry is the normalised form of a page address.
type PathEntry struct {
	Segments []string
	Depth    int
	Key      string
}

// HasPrefix reports whether the entry starts with the supplied segments.
func (e PathEntry) HasPrefix(prefix []string) bool {
	return hasSegmentPrefix(e.Segments, prefix)
}

// Equals reports whether the entry addresses exactly the supplied segments.
func (e PathEntry) Equals(segments []string) bool {
	return len(e.Segments) == len(segments) && hasSegmentPrefix(e.Segments, segments)
}

// PageView is the immutable projection of a page that templates consume.
type PageView struct {
	Address      string   `json:"address" yaml:"address"`
	Layout       string   `json:"layout" yaml:"layout"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Order        int      `json:"order" yaml:"order"`
	Path         string   `json:"path" yaml:"path"`
	PathSegments []string `json:"path_segments" yaml:"path_segments"`
	Depth        int      `json:"depth" yaml:"depth"`
	LinkPath     string   `json:"link_path" yaml:"link_path"`
	Selected     bool     `json:"selected" yaml:"selected"`
}

// Column holds the sibling pages displayed for one depth level.
type Column struct {
	Title string     `json:"title" yaml:"title"`
	Pages []PageView `json:"pages" yaml:"pages"`
}

// Index is the target independent column structure produced by ColumnBuilder.
// It must be treated as read-only once built.
type Index struct {
	MinDepth int
	Columns  []Column
}

// Empty reports whether no eligible page was indexed.
func (i Index) Empty() bool {
	return len(i.Columns) == 0
}

// Navigation is the per-page result attached to render contexts.
type Navigation struct {
	Columns     []Column   `json:"columns" yaml:"columns"`
	Breadcrumbs []PageView `json:"breadcrumbs" yaml:"breadcrumbs"`
}

func newPageView(page Page, entry PathEntry) PageView {
	return PageView{
		Address:      page.Address,
		Layout:       page.Layout,
		Title:        page.Title,
		Description:  page.Description,
		Order:        page.Order,
		Path:         entry.Key,
		PathSegments: append([]string(nil), entry.Segments...),
		Depth:        entry.Depth,
		LinkPath:     "/" + entry.Key + "/",
	}
}

func (v PageView) entry() PathEntry {
	return PathEntry{Segments: v.PathSegments, Depth: v.Depth, Key: v.Path}
}

func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, part := range prefix {
		if segments[i] != part {
			return false
		}
	}
	return true
}
