package navigation

import (
	"path"
	"strings"
)

// DefaultIndexBasename is the file stem treated as a directory's own page.
const DefaultIndexBasename = "index"

// PathIndexer normalises page addresses into path segments.
type PathIndexer struct {
	indexBasename string
}

// NewPathIndexer returns an indexer that strips the supplied index basename.
// An empty basename falls back to DefaultIndexBasename.
func NewPathIndexer(indexBasename string) PathIndexer {
	indexBasename = strings.TrimSpace(indexBasename)
	if indexBasename == "" {
		indexBasename = DefaultIndexBasename
	}
	return PathIndexer{indexBasename: indexBasename}
}

// IndexBasename returns the configured basename.
func (p PathIndexer) IndexBasename() string {
	if p.indexBasename == "" {
		return DefaultIndexBasename
	}
	return p.indexBasename
}

// Index splits address on "/" and drops a trailing index file when more than one
// segment is present. Empty components are discarded.
func (p PathIndexer) Index(address string) (PathEntry, error) {
	parts := strings.Split(address, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}

	if len(segments) > 1 && p.isIndexFile(segments[len(segments)-1]) {
		segments = segments[:len(segments)-1]
	}

	if len(segments) == 0 {
		return PathEntry{}, &MalformedAddressError{Address: address}
	}

	return PathEntry{
		Segments: segments,
		Depth:    len(segments),
		Key:      strings.Join(segments, "/"),
	}, nil
}

func (p PathIndexer) isIndexFile(segment string) bool {
	basename := p.IndexBasename()
	if segment == basename {
		return true
	}
	ext := path.Ext(segment)
	if ext == "" || ext == segment {
		return false
	}
	return strings.TrimSuffix(segment, ext) == basename
}
