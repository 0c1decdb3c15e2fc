package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the page keys the navigation builder consumes plus the
// full decoded mapping for schema checks.
type FrontMatter struct {
	Layout      string
	Title       string
	Description string
	Order       int
	Raw         map[string]any
}

// ParseFrontMatter splits source into its frontmatter and markdown body.
// Documents without a frontmatter block yield a zero FrontMatter and the whole
// source as body. Keys of the wrong type are left at their zero value; schema
// validation reports them.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	return FrontMatter{
		Layout:      stringValue(raw, "layout"),
		Title:       stringValue(raw, "title"),
		Description: stringValue(raw, "description"),
		Order:       intValue(raw, "order"),
		Raw:         raw,
	}, body, nil
}

func stringValue(raw map[string]any, key string) string {
	if value, ok := raw[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func intValue(raw map[string]any, key string) int {
	switch value := raw[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case uint64:
		return int(value)
	case float64:
		if value == float64(int(value)) {
			return int(value)
		}
	}
	return 0
}
