package markdown

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sitenav/internal/logging/console"
	"github.com/goliatone/go-sitenav/internal/validation"
)

func TestParseFrontMatter(t *testing.T) {
	data := []byte("---\nlayout: category\ntitle: Beetles\ndescription: Hard shells\norder: 2\ncolour: green\n---\n# Beetles\n")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Layout != "category" || fm.Title != "Beetles" || fm.Description != "Hard shells" {
		t.Fatalf("unexpected frontmatter %+v", fm)
	}
	if fm.Order != 2 {
		t.Fatalf("expected order 2, got %d", fm.Order)
	}
	if fm.Raw["colour"] != "green" {
		t.Fatalf("expected custom keys in Raw, got %#v", fm.Raw)
	}
	if !strings.Contains(string(body), "# Beetles") {
		t.Fatalf("body not returned correctly: %q", body)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("plain body\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Layout != "" || len(fm.Raw) != 0 {
		t.Fatalf("expected empty frontmatter, got %+v", fm)
	}
	if string(body) != "plain body\n" {
		t.Fatalf("expected full body, got %q", body)
	}
}

func TestParseFrontMatterWrongTypesLeftZero(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte("---\nlayout: 12\norder: first\n---\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Layout != "" || fm.Order != 0 {
		t.Fatalf("expected zero values, got %+v", fm)
	}
}

func TestRendererConvertsMarkdown(t *testing.T) {
	r := NewRenderer(RenderOptions{})
	html, err := r.Render([]byte("# Ground beetle\n\n<span>raw</span>\n\n- [x] done\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<h1 id="ground-beetle">Ground beetle</h1>`) {
		t.Fatalf("expected heading with auto id, got %s", out)
	}
	if !strings.Contains(out, "<span>raw</span>") {
		t.Fatalf("expected raw html to pass through, got %s", out)
	}
	if !strings.Contains(out, `type="checkbox"`) {
		t.Fatalf("expected task list extension, got %s", out)
	}

	empty, err := r.Render([]byte("  \n"))
	if err != nil || empty != nil {
		t.Fatalf("expected nil output for blank body, got %q, %v", empty, err)
	}
}

func TestRendererSafeMode(t *testing.T) {
	r := NewRenderer(RenderOptions{SafeMode: true, Extensions: []string{"table", "unknown"}})
	html, err := r.Render([]byte("<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw html to be dropped, got %s", html)
	}
}

func TestAddressFor(t *testing.T) {
	cases := map[string]string{
		"animals/index.markdown":                  "animals/index",
		"/animals/beetles/ground-beetle.markdown": "animals/beetles/ground-beetle",
		"about.md":                                "about",
		"index.markdown":                          "index",
	}
	for input, want := range cases {
		if got := AddressFor(input); got != want {
			t.Fatalf("AddressFor(%q) = %q, want %q", input, got, want)
		}
	}
}

func contentTree() fstest.MapFS {
	return fstest.MapFS{
		"index.markdown":                         {Data: []byte("---\nlayout: home\ntitle: Home\n---\nWelcome\n")},
		"animals/index.markdown":                 {Data: []byte("---\nlayout: category\ntitle: Animals\n---\n")},
		"animals/beetles/index.markdown":         {Data: []byte("---\nlayout: category\ntitle: Beetles\norder: 1\n---\n")},
		"animals/beetles/ground-beetle.markdown": {Data: []byte("---\nlayout: article\ntitle: Ground beetle\n---\n# Ground\n")},
		"animals/notes.txt":                      {Data: []byte("ignored")},
		"plants/index.md":                        {Data: []byte("---\nlayout: category\ntitle: Plants\n---\n")},
		".drafts/index.markdown":                 {Data: []byte("---\nlayout: category\n---\n")},
	}
}

func TestSourceListsPagesInPathOrder(t *testing.T) {
	src := NewSource(contentTree(), SourceConfig{Recursive: true})

	pages, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{
		"animals/beetles/ground-beetle",
		"animals/beetles/index",
		"animals/index",
		"index",
	}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d: %+v", len(want), len(pages), pages)
	}
	for i, address := range want {
		if pages[i].Address != address {
			t.Fatalf("page %d address = %q, want %q", i, pages[i].Address, address)
		}
	}
	if pages[1].Title != "Beetles" || pages[1].Order != 1 || pages[1].Layout != "category" {
		t.Fatalf("unexpected page %+v", pages[1])
	}
	if pages[0].Source != "animals/beetles/ground-beetle.markdown" {
		t.Fatalf("expected source path, got %q", pages[0].Source)
	}
	if !strings.Contains(string(pages[0].Body), "# Ground") {
		t.Fatalf("expected body, got %q", pages[0].Body)
	}
}

func TestSourcePatternsAndRecursion(t *testing.T) {
	src := NewSource(contentTree(), SourceConfig{Pattern: "*.md|*.markdown", Recursive: true})
	pages, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pages) != 5 {
		t.Fatalf("expected 5 pages with both patterns, got %d", len(pages))
	}

	flat := NewSource(contentTree(), SourceConfig{Recursive: false})
	pages, err = flat.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pages) != 1 || pages[0].Address != "index" {
		t.Fatalf("expected only the root page, got %+v", pages)
	}
}

func TestSourceValidatesFrontmatter(t *testing.T) {
	validator, err := validation.DefaultPageValidator()
	if err != nil {
		t.Fatalf("DefaultPageValidator: %v", err)
	}

	tree := contentTree()
	tree["animals/broken.markdown"] = &fstest.MapFile{Data: []byte("---\nlayout: article\norder: first\n---\n")}

	src := NewSource(tree, SourceConfig{Recursive: true}, WithValidator(validator))
	_, err = src.List(context.Background())
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "animals/broken.markdown") {
		t.Fatalf("expected source path in error, got %v", err)
	}
}

func TestSourceSlugLintWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := console.NewProvider(console.Options{Writer: &buf}).GetLogger("sitenav.source")

	tree := fstest.MapFS{
		"Big Cats/index.markdown": {Data: []byte("---\nlayout: category\n---\n")},
	}
	src := NewSource(tree, SourceConfig{Recursive: true}, WithLogger(logger), WithSlugLint(true))
	if _, err := src.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "markdown.source.segment_not_slug") || !strings.Contains(out, `segment="Big Cats"`) {
		t.Fatalf("expected slug warning, got %s", out)
	}
	if !strings.Contains(out, `source_path="Big Cats/index.markdown"`) {
		t.Fatalf("expected source path field, got %s", out)
	}
}

func TestSourceHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSource(contentTree(), SourceConfig{}).List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
