package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const manifestVersion = 1

// Manifest is the document written at the end of a build.
type Manifest struct {
	Version     int             `json:"version" yaml:"version"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	MinDepth    int             `json:"min_depth" yaml:"min_depth"`
	Columns     int             `json:"columns" yaml:"columns"`
	Pages       []RenderContext `json:"pages" yaml:"pages"`
}

// ManifestFilename returns the file name used for format.
func ManifestFilename(format string) string {
	return "navigation." + normalizeFormat(format)
}

// Marshal encodes m as json (indented) or yaml.
func (m Manifest) Marshal(format string) ([]byte, error) {
	if m.Pages == nil {
		m.Pages = []RenderContext{}
	}
	switch normalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("generator: encode manifest: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("generator: encode manifest: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormatUnsupported, format)
	}
}

// ParseManifest decodes a manifest written by Marshal.
func ParseManifest(data []byte, format string) (Manifest, error) {
	var m Manifest
	var err error
	switch normalizeFormat(format) {
	case "json":
		err = json.Unmarshal(data, &m)
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	default:
		return Manifest{}, fmt.Errorf("%w: %q", ErrFormatUnsupported, format)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("generator: decode manifest: %w", err)
	}
	return m, nil
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", "json":
		return "json"
	case "yml", "yaml":
		return "yaml"
	default:
		return f
	}
}
