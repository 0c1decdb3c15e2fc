package navigation

// Resolution is the outcome of resolving a single target page.
type Resolution struct {
	Navigation Navigation
	// Gaps lists the column indexes where no ancestor of the target was found.
	Gaps []int
}

// Resolver derives the columns and breadcrumbs shown for a target page.
type Resolver struct {
	indexer PathIndexer
	policy  Policy
}

// NewResolver wires a resolver with the supplied indexer and policy.
func NewResolver(indexer PathIndexer, policy Policy) Resolver {
	return Resolver{indexer: indexer, policy: policy}
}

// Resolve walks the index along the target's path. Column i lists the pages at
// depth minDepth+i that share the target's first minDepth+i-1 segments, and the
// page whose path equals the target's first minDepth+i segments is selected and
// appended to the breadcrumbs. The title of column i is the title of the page
// selected in column i-1, or empty when that depth has no matching page.
//
// Targets that fall outside the index (empty index or a target shallower than
// the minimum depth) receive the default navigation.
func (r Resolver) Resolve(target Page, index Index) (Resolution, error) {
	if !r.policy.Eligible(target.Layout) {
		return Resolution{}, ErrIneligibleTarget
	}
	entry, err := r.indexer.Index(target.Address)
	if err != nil {
		return Resolution{}, withSource(err, target.Source)
	}
	if index.Empty() || entry.Depth < index.MinDepth {
		return Resolution{Navigation: DefaultFor(index.Columns)}, nil
	}

	endDepthIndex := min(entry.Depth-index.MinDepth, len(index.Columns)-1)

	columns := make([]Column, 0, endDepthIndex+1)
	breadcrumbs := make([]PageView, 0, endDepthIndex+1)
	var gaps []int
	title := ""

	for i := 0; i <= endDepthIndex; i++ {
		var show []string
		if i > 0 {
			show = entry.Segments[:index.MinDepth+i-1]
		}
		selectPrefix := entry.Segments[:index.MinDepth+i]

		members := make([]PageView, 0, len(index.Columns[i].Pages))
		nextTitle := ""
		selected := false
		for _, candidate := range index.Columns[i].Pages {
			candidateEntry := candidate.entry()
			if !candidateEntry.HasPrefix(show) {
				continue
			}
			view := candidate
			if candidateEntry.Equals(selectPrefix) {
				view.Selected = true
				breadcrumbs = append(breadcrumbs, view)
				nextTitle = view.Title
				selected = true
			}
			members = append(members, view)
		}
		if !selected {
			gaps = append(gaps, i)
		}

		columns = append(columns, Column{
			Title: title,
			Pages: SortByTitle(members),
		})
		title = nextTitle
	}

	return Resolution{
		Navigation: Navigation{Columns: columns, Breadcrumbs: breadcrumbs},
		Gaps:       gaps,
	}, nil
}

// DefaultFor returns the navigation given to pages outside the hierarchy: the
// root column alone and no breadcrumbs.
func DefaultFor(columns []Column) Navigation {
	root := []PageView{}
	if len(columns) > 0 {
		root = make([]PageView, len(columns[0].Pages))
		copy(root, columns[0].Pages)
	}
	return Navigation{
		Columns:     []Column{{Title: "", Pages: root}},
		Breadcrumbs: []PageView{},
	}
}
