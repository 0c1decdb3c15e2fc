package navigation

import (
	"slices"
	"strings"
)

// SortByTitle returns a copy of pages ordered by case-sensitive title. Pages with
// equal titles keep their relative input order. The input slice is never modified.
func SortByTitle(pages []PageView) []PageView {
	sorted := make([]PageView, len(pages))
	copy(sorted, pages)
	slices.SortStableFunc(sorted, func(a, b PageView) int {
		return strings.Compare(a.Title, b.Title)
	})
	return sorted
}
