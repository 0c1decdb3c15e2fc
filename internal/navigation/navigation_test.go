package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func page(address, layout, title string) Page {
	return Page{Address: address, Layout: layout, Title: title}
}

func titles(pages []PageView) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Title)
	}
	return out
}

func paths(pages []PageView) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Path)
	}
	return out
}

func newTestService() *Service {
	return NewService(DefaultConfig(), WithClock(func() time.Time { return time.Unix(0, 0) }))
}

func resolve(t *testing.T, svc *Service, pages []Page, target Page) PageNavigation {
	t.Helper()
	index, err := svc.Build(pages)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	item, err := svc.Resolve(target, index)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return item
}

func TestBuildSortsRootColumnAlphabetically(t *testing.T) {
	input := []Page{
		page("anthicidae/index.markdown", "category", "Anthicidae"),
		page("scydmaenidae/index.markdown", "category", "Scydmaenidae"),
		page("paussinae/index.markdown", "category", "Paussinae"),
		page("bostrychidae/index.markdown", "category", "Bostrychidae"),
	}

	index, err := newTestService().Build(input)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"Anthicidae", "Bostrychidae", "Paussinae", "Scydmaenidae"}
	if got := titles(index.Columns[0].Pages); !reflect.DeepEqual(got, want) {
		t.Fatalf("root column titles = %v, want %v", got, want)
	}
}

func TestGenerateAlphabetizesNestedRoot(t *testing.T) {
	names := []string{"Anthicidae", "Scydmaenidae", "Paussinae", "Bostrychidae", "Scolytidae", "Anobiidae", "Meloidae", "Dermestidae", "Silphidae"}
	input := make([]Page, 0, len(names))
	for _, name := range names {
		input = append(input, page("base/"+strings.ToLower(name)+"/index.markdown", "category", name))
	}

	result, err := newTestService().Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Index.MinDepth != 2 {
		t.Fatalf("expected min depth 2, got %d", result.Index.MinDepth)
	}

	got := titles(result.Pages[0].Navigation.Columns[0].Pages)
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("root column not sorted: %v", got)
		}
	}
	if len(got) != len(names) {
		t.Fatalf("expected %d root pages, got %d", len(names), len(got))
	}

	crumbs := result.Pages[0].Navigation.Breadcrumbs
	if len(crumbs) != 1 || crumbs[0].Title != "Anthicidae" || crumbs[0].Depth != 2 {
		t.Fatalf("expected breadcrumb for the page itself at min depth, got %+v", crumbs)
	}
}

func TestResolveBreadcrumbsWithAncestor(t *testing.T) {
	input := []Page{
		page("animals/index.markdown", "category", "Animals"),
		page("animals/beetles/index.markdown", "category", "Beetles"),
	}
	item := resolve(t, newTestService(), input, input[1])

	nav := item.Navigation
	if got := paths(nav.Breadcrumbs); !reflect.DeepEqual(got, []string{"animals", "animals/beetles"}) {
		t.Fatalf("breadcrumbs = %v", got)
	}
	if len(nav.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(nav.Columns))
	}
	if nav.Columns[0].Title != "" {
		t.Fatalf("expected empty root column title, got %q", nav.Columns[0].Title)
	}
	if nav.Columns[1].Title != "Animals" {
		t.Fatalf("expected second column titled Animals, got %q", nav.Columns[1].Title)
	}
	for _, crumb := range nav.Breadcrumbs {
		if !crumb.Selected {
			t.Fatalf("expected breadcrumb %q to be selected", crumb.Path)
		}
	}
	if item.LinkPath != "/animals/beetles/" {
		t.Fatalf("unexpected link path %q", item.LinkPath)
	}
	if len(item.Gaps) != 0 {
		t.Fatalf("expected no gaps, got %v", item.Gaps)
	}
}

func TestResolveMissingAncestorLeavesGap(t *testing.T) {
	input := []Page{
		page("animals/index.markdown", "category", "Animals"),
		page("animals/beetles/ground-beetle/index.markdown", "article", "Ground Beetle"),
	}
	item := resolve(t, newTestService(), input, input[1])

	nav := item.Navigation
	if got := paths(nav.Breadcrumbs); !reflect.DeepEqual(got, []string{"animals", "animals/beetles/ground-beetle"}) {
		t.Fatalf("breadcrumbs = %v", got)
	}
	for _, crumb := range nav.Breadcrumbs {
		if crumb.Depth == 2 {
			t.Fatalf("expected no breadcrumb at depth 2, got %+v", crumb)
		}
	}
	if len(nav.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(nav.Columns))
	}
	if nav.Columns[1].Title != "Animals" {
		t.Fatalf("expected column 1 titled Animals, got %q", nav.Columns[1].Title)
	}
	if len(nav.Columns[1].Pages) != 0 {
		t.Fatalf("expected empty gap column, got %v", paths(nav.Columns[1].Pages))
	}
	if nav.Columns[2].Title != "" {
		t.Fatalf("expected column 2 title to reset after gap, got %q", nav.Columns[2].Title)
	}
	if !reflect.DeepEqual(item.Gaps, []int{1}) {
		t.Fatalf("expected gap at column 1, got %v", item.Gaps)
	}
}

func TestResolveIneligiblePageGetsDefault(t *testing.T) {
	input := []Page{
		page("animals/index.markdown", "category", "Animals"),
		page("plants/index.markdown", "category", "Plants"),
		page("animals/photos/index.markdown", "gallery", "Photos"),
	}
	item := resolve(t, newTestService(), input, input[2])

	if item.Eligible {
		t.Fatal("expected gallery page to be ineligible")
	}
	assertDefaultNavigation(t, item.Navigation)
	if got := titles(item.Navigation.Columns[0].Pages); !reflect.DeepEqual(got, []string{"Animals", "Plants"}) {
		t.Fatalf("expected root pages in default navigation, got %v", got)
	}
}

func TestResolveIneligibleWithMalformedAddressGetsDefault(t *testing.T) {
	item := resolve(t, newTestService(), []Page{page("animals", "category", "Animals")}, page("", "gallery", "Loose"))
	assertDefaultNavigation(t, item.Navigation)
}

func TestBuildEmptyCollection(t *testing.T) {
	svc := newTestService()
	index, err := svc.Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if index.MinDepth != 0 || len(index.Columns) != 0 {
		t.Fatalf("expected empty index, got %+v", index)
	}

	item, err := svc.Resolve(page("animals/index.markdown", "category", "Animals"), index)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	assertDefaultNavigation(t, item.Navigation)
	if len(item.Navigation.Columns[0].Pages) != 0 {
		t.Fatalf("expected empty root column, got %v", item.Navigation.Columns[0].Pages)
	}
}

func TestDefaultForEmptyIndexEncodesEmptyRoot(t *testing.T) {
	nav := DefaultFor(nil)
	if nav.Columns[0].Pages == nil {
		t.Fatal("expected non-nil root column pages")
	}
	data, err := json.Marshal(nav)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"pages":[]`) || !strings.Contains(string(data), `"breadcrumbs":[]`) {
		t.Fatalf("expected empty arrays in %s", data)
	}
}

func TestGenerateAllIneligible(t *testing.T) {
	input := []Page{
		page("about/index.markdown", "page", "About"),
		page("contact/index.markdown", "", "Contact"),
	}
	result, err := newTestService().Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Eligible != 0 || result.Default != 2 {
		t.Fatalf("expected all default navigation, got eligible=%d default=%d", result.Eligible, result.Default)
	}
	for _, item := range result.Pages {
		assertDefaultNavigation(t, item.Navigation)
	}
}

func TestSortIsStableOnEqualTitles(t *testing.T) {
	input := []Page{
		page("zeta", "category", "Zeta"),
		page("meloidae-a", "category", "Meloidae"),
		page("meloidae-b", "category", "Meloidae"),
		page("alpha", "category", "Alpha"),
	}
	index, err := newTestService().Build(input)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"alpha", "meloidae-a", "meloidae-b", "zeta"}
	if got := paths(index.Columns[0].Pages); !reflect.DeepEqual(got, want) {
		t.Fatalf("root order = %v, want %v", got, want)
	}
}

func TestSortIsCaseSensitive(t *testing.T) {
	sorted := SortByTitle([]PageView{{Title: "beta"}, {Title: "Gamma"}, {Title: "alpha"}, {Title: "Beta"}})
	want := []string{"Beta", "Gamma", "alpha", "beta"}
	if got := titles(sorted); !reflect.DeepEqual(got, want) {
		t.Fatalf("SortByTitle() = %v, want %v", got, want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := []PageView{{Title: "b"}, {Title: "a"}}
	_ = SortByTitle(input)
	if input[0].Title != "b" {
		t.Fatal("expected SortByTitle to leave input untouched")
	}
}

func TestBuildAllocatesGapColumns(t *testing.T) {
	input := []Page{
		page("animals", "category", "Animals"),
		page("animals/beetles/ground-beetle", "article", "Ground Beetle"),
	}
	index, err := newTestService().Build(input)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(index.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(index.Columns))
	}
	if len(index.Columns[1].Pages) != 0 {
		t.Fatalf("expected empty middle column, got %v", index.Columns[1].Pages)
	}
}

func TestBuildMalformedEligibleAddressFails(t *testing.T) {
	input := []Page{
		page("animals", "category", "Animals"),
		{Address: "/", Layout: "article", Title: "Broken", Source: "content/broken.md"},
	}
	_, err := newTestService().Build(input)
	if !errors.Is(err, ErrMalformedAddress) {
		t.Fatalf("expected ErrMalformedAddress, got %v", err)
	}
	var malformed *MalformedAddressError
	if !errors.As(err, &malformed) || malformed.Source != "content/broken.md" {
		t.Fatalf("expected source on malformed address error, got %v", err)
	}

	if _, err := newTestService().Generate(context.Background(), input); !errors.Is(err, ErrMalformedAddress) {
		t.Fatalf("expected Generate to fail with ErrMalformedAddress, got %v", err)
	}
}

func TestResolveFiltersColumnsToSharedAncestry(t *testing.T) {
	input := []Page{
		page("plants", "category", "Plants"),
		page("animals", "category", "Animals"),
		page("animals-extra", "category", "Animals Extra"),
		page("animals/bees", "category", "Bees"),
		page("animals/beetles", "category", "Beetles"),
		page("animals-extra/ants", "category", "Ants"),
		page("plants/ferns", "category", "Ferns"),
		page("animals/beetles/ground-beetle", "article", "Ground Beetle"),
		page("animals/bees/honey-bee", "article", "Honey Bee"),
	}
	item := resolve(t, newTestService(), input, page("animals/beetles", "category", "Beetles"))
	nav := item.Navigation

	if len(nav.Columns) != 2 {
		t.Fatalf("expected navigation to stop at the target depth, got %d columns", len(nav.Columns))
	}
	if got := titles(nav.Columns[0].Pages); !reflect.DeepEqual(got, []string{"Animals", "Animals Extra", "Plants"}) {
		t.Fatalf("root column = %v", got)
	}
	if got := paths(nav.Columns[1].Pages); !reflect.DeepEqual(got, []string{"animals/bees", "animals/beetles"}) {
		t.Fatalf("second column = %v", got)
	}
	if nav.Columns[1].Pages[0].Selected || !nav.Columns[1].Pages[1].Selected {
		t.Fatalf("expected only beetles selected, got %+v", nav.Columns[1].Pages)
	}
	if !nav.Columns[0].Pages[0].Selected || nav.Columns[0].Pages[1].Selected {
		t.Fatalf("expected only animals selected in the root column, got %+v", nav.Columns[0].Pages)
	}
}

func TestResolveDoesNotMutateSharedIndex(t *testing.T) {
	input := []Page{
		page("b", "category", "B"),
		page("a", "category", "A"),
		page("a/z", "category", "Z"),
		page("a/y", "category", "Y"),
	}
	svc := newTestService()
	index, err := svc.Build(input)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	before, _ := json.Marshal(index.Columns)

	for _, target := range input {
		if _, err := svc.Resolve(target, index); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	}

	after, _ := json.Marshal(index.Columns)
	if string(before) != string(after) {
		t.Fatalf("index mutated by resolution:\nbefore %s\nafter  %s", before, after)
	}
	if got := paths(index.Columns[1].Pages); !reflect.DeepEqual(got, []string{"a/z", "a/y"}) {
		t.Fatalf("expected deeper columns to keep input order, got %v", got)
	}
}

func TestResolveRejectsIneligibleTarget(t *testing.T) {
	r := NewResolver(NewPathIndexer(""), NewPolicy())
	if _, err := r.Resolve(page("x", "gallery", "X"), Index{}); !errors.Is(err, ErrIneligibleTarget) {
		t.Fatalf("expected ErrIneligibleTarget, got %v", err)
	}
}

func TestDefaultForCopiesRootColumn(t *testing.T) {
	columns := []Column{{Pages: []PageView{{Title: "A"}}}}
	nav := DefaultFor(columns)
	nav.Columns[0].Pages[0].Title = "changed"
	if columns[0].Pages[0].Title != "A" {
		t.Fatal("expected DefaultFor to copy the root column")
	}
}

func assertDefaultNavigation(t *testing.T, nav Navigation) {
	t.Helper()
	if len(nav.Columns) != 1 {
		t.Fatalf("expected exactly one column, got %d", len(nav.Columns))
	}
	if nav.Columns[0].Title != "" {
		t.Fatalf("expected empty column title, got %q", nav.Columns[0].Title)
	}
	if nav.Breadcrumbs == nil || len(nav.Breadcrumbs) != 0 {
		t.Fatalf("expected empty breadcrumbs, got %v", nav.Breadcrumbs)
	}
}

func deepSite() []Page {
	return []Page{
		page("base/insects/index.markdown", "category", "Insects"),
		page("base/plants/index.markdown", "category", "Plants"),
		page("base/insects/beetles/index.markdown", "category", "Beetles"),
		page("base/insects/ants/index.markdown", "category", "Ants"),
		page("base/plants/ferns/index.markdown", "category", "Ferns"),
		page("base/insects/beetles/ground/index.markdown", "category", "Ground beetles"),
		page("base/insects/beetles/bark/index.markdown", "category", "Bark beetles"),
		page("base/insects/ants/army/index.markdown", "category", "Army ants"),
		page("base/insects/beetles/ground/carabus.markdown", "article", "Carabus"),
		page("base/insects/beetles/ground/amara.markdown", "article", "Amara"),
		page("base/insects/beetles/bark/ips.markdown", "article", "Ips"),
	}
}

func selectedTitles(pages []PageView) []string {
	out := []string{}
	for _, p := range pages {
		if p.Selected {
			out = append(out, p.Title)
		}
	}
	return out
}

func TestResolveDeepTargetBelowNestedRoot(t *testing.T) {
	svc := newTestService()
	input := deepSite()

	index, err := svc.Build(input)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if index.MinDepth != 2 || len(index.Columns) != 4 {
		t.Fatalf("expected min depth 2 with four columns, got %d/%d", index.MinDepth, len(index.Columns))
	}

	item, err := svc.Resolve(input[8], index)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(item.Gaps) != 0 {
		t.Fatalf("expected no gaps, got %v", item.Gaps)
	}

	want := []struct {
		title    string
		pages    []string
		selected string
	}{
		{title: "", pages: []string{"Insects", "Plants"}, selected: "Insects"},
		{title: "Insects", pages: []string{"Ants", "Beetles"}, selected: "Beetles"},
		{title: "Beetles", pages: []string{"Bark beetles", "Ground beetles"}, selected: "Ground beetles"},
		{title: "Ground beetles", pages: []string{"Amara", "Carabus"}, selected: "Carabus"},
	}
	columns := item.Navigation.Columns
	if len(columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(columns))
	}
	for i, w := range want {
		if columns[i].Title != w.title {
			t.Fatalf("column %d title = %q, want %q", i, columns[i].Title, w.title)
		}
		if got := titles(columns[i].Pages); !reflect.DeepEqual(got, w.pages) {
			t.Fatalf("column %d pages = %v, want %v", i, got, w.pages)
		}
		if got := selectedTitles(columns[i].Pages); !reflect.DeepEqual(got, []string{w.selected}) {
			t.Fatalf("column %d selected = %v, want [%s]", i, got, w.selected)
		}
	}

	crumbs := item.Navigation.Breadcrumbs
	if got := titles(crumbs); !reflect.DeepEqual(got, []string{"Insects", "Beetles", "Ground beetles", "Carabus"}) {
		t.Fatalf("breadcrumbs = %v", got)
	}
	for i, crumb := range crumbs {
		if crumb.Depth != index.MinDepth+i {
			t.Fatalf("breadcrumb %d depth = %d, want %d", i, crumb.Depth, index.MinDepth+i)
		}
	}
}

func TestResolveIntermediateTargetBelowNestedRoot(t *testing.T) {
	item := resolve(t, newTestService(), deepSite(), page("base/insects/beetles/bark/index.markdown", "category", "Bark beetles"))

	columns := item.Navigation.Columns
	if len(columns) != 3 {
		t.Fatalf("expected three columns for a depth 4 target, got %d", len(columns))
	}
	if got := titles(columns[2].Pages); !reflect.DeepEqual(got, []string{"Bark beetles", "Ground beetles"}) {
		t.Fatalf("third column = %v", got)
	}
	if got := selectedTitles(columns[2].Pages); !reflect.DeepEqual(got, []string{"Bark beetles"}) {
		t.Fatalf("third column selected = %v", got)
	}
	if got := paths(item.Navigation.Breadcrumbs); !reflect.DeepEqual(got, []string{"base/insects", "base/insects/beetles", "base/insects/beetles/bark"}) {
		t.Fatalf("breadcrumb paths = %v", got)
	}
}
