package navigation

import "strings"

// Layout tags recognised by the default eligibility policy.
const (
	LayoutTagCategory = "category"
	LayoutTagArticle  = "article"
)

// LayoutKind classifies a page layout tag.
type LayoutKind int

const (
	LayoutOther LayoutKind = iota
	LayoutCategory
	LayoutArticle
)

// ClassifyLayout maps a raw layout tag onto its LayoutKind.
func ClassifyLayout(tag string) LayoutKind {
	switch strings.TrimSpace(tag) {
	case LayoutTagCategory:
		return LayoutCategory
	case LayoutTagArticle:
		return LayoutArticle
	default:
		return LayoutOther
	}
}

// String returns the canonical tag for the kind.
func (k LayoutKind) String() string {
	switch k {
	case LayoutCategory:
		return LayoutTagCategory
	case LayoutArticle:
		return LayoutTagArticle
	default:
		return "other"
	}
}

// DisplayName is the noun used in interface text for a single item.
func (k LayoutKind) DisplayName() string {
	switch k {
	case LayoutCategory:
		return "topic"
	case LayoutArticle:
		return "article"
	default:
		return "page"
	}
}

// Plural is the noun used in interface text for several items.
func (k LayoutKind) Plural() string {
	switch k {
	case LayoutCategory:
		return "topics"
	case LayoutArticle:
		return "articles"
	default:
		return "pages"
	}
}

// DefaultEligibleLayouts returns the layout tags that participate in the hierarchy
// when no explicit configuration is supplied.
func DefaultEligibleLayouts() []string {
	return []string{LayoutTagCategory, LayoutTagArticle}
}

// Policy decides which layout tags take part in the hierarchy.
type Policy struct {
	eligible map[string]struct{}
}

// NewPolicy builds a Policy from the supplied tags. Blank tags are ignored and an
// empty input falls back to DefaultEligibleLayouts.
func NewPolicy(tags ...string) Policy {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, tag := range DefaultEligibleLayouts() {
			set[tag] = struct{}{}
		}
	}
	return Policy{eligible: set}
}

// Eligible reports whether a page with the given layout tag is placed in columns.
func (p Policy) Eligible(tag string) bool {
	if p.eligible == nil {
		kind := ClassifyLayout(tag)
		return kind == LayoutCategory || kind == LayoutArticle
	}
	_, ok := p.eligible[strings.TrimSpace(tag)]
	return ok
}
