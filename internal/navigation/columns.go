package navigation

// ColumnBuilder groups eligible pages into depth ordered columns.
type ColumnBuilder struct {
	indexer PathIndexer
	policy  Policy
}

// NewColumnBuilder wires a builder with the supplied indexer and policy.
func NewColumnBuilder(indexer PathIndexer, policy Policy) ColumnBuilder {
	return ColumnBuilder{indexer: indexer, policy: policy}
}

// Build indexes every eligible page and places it in the column matching its
// depth relative to the shallowest eligible page. Columns between populated
// depths are allocated even when empty. Only the root column is sorted here;
// deeper columns are filtered per target and sorted during resolution.
func (b ColumnBuilder) Build(pages []Page) (Index, error) {
	type placed struct {
		page  Page
		entry PathEntry
	}

	eligible := make([]placed, 0, len(pages))
	minDepth, maxDepth := 0, 0
	for _, page := range pages {
		if !b.policy.Eligible(page.Layout) {
			continue
		}
		entry, err := b.indexer.Index(page.Address)
		if err != nil {
			return Index{}, withSource(err, page.Source)
		}
		if len(eligible) == 0 || entry.Depth < minDepth {
			minDepth = entry.Depth
		}
		if entry.Depth > maxDepth {
			maxDepth = entry.Depth
		}
		eligible = append(eligible, placed{page: page, entry: entry})
	}

	if len(eligible) == 0 {
		return Index{MinDepth: 0}, nil
	}

	columns := make([]Column, maxDepth-minDepth+1)
	for _, item := range eligible {
		idx := item.entry.Depth - minDepth
		columns[idx].Pages = append(columns[idx].Pages, newPageView(item.page, item.entry))
	}
	columns[0].Pages = SortByTitle(columns[0].Pages)

	return Index{MinDepth: minDepth, Columns: columns}, nil
}

func withSource(err error, source string) error {
	if source == "" {
		return err
	}
	if malformed, ok := err.(*MalformedAddressError); ok {
		return &MalformedAddressError{Address: malformed.Address, Source: source}
	}
	return err
}
