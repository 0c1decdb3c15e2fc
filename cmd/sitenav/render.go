package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-sitenav"
	"github.com/goliatone/go-sitenav/internal/navigation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

func renderError(err error) string {
	return errorStyle.Render("error:") + " " + err.Error()
}

func renderBuild(w io.Writer, result *sitenav.BuildResult) {
	if result == nil {
		return
	}
	output := result.Output
	if result.DryRun {
		output = dimStyle.Render("(dry run)")
	}
	lines := []string{
		titleStyle.Render("Navigation generated"),
		fmt.Sprintf("%s %d  %s %d  %s %d",
			dimStyle.Render("pages:"), len(result.Pages),
			dimStyle.Render("eligible:"), result.Eligible,
			dimStyle.Render("default:"), result.Default,
		),
		fmt.Sprintf("%s %s", dimStyle.Render("output:"), output),
		fmt.Sprintf("%s %s", dimStyle.Render("took:"), result.Duration.Round(time.Millisecond)),
	}
	if result.Gaps > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d page(s) have missing ancestors", result.Gaps)))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

func renderImport(w io.Writer, result sitenav.ImportResult) {
	header := "Pages imported"
	if result.DryRun {
		header = "Import preview"
	}
	body := fmt.Sprintf("%s\n%s %d  %s %d  %s %d",
		titleStyle.Render(header),
		dimStyle.Render("created:"), result.Created,
		dimStyle.Render("updated:"), result.Updated,
		dimStyle.Render("deleted:"), result.Deleted,
	)
	fmt.Fprintln(w, boxStyle.Render(body))
}

// renderNavigation draws the columns side by side followed by the
// breadcrumb trail.
func renderNavigation(w io.Writer, nav *sitenav.PageNavigation) {
	if nav == nil {
		return
	}
	header := fmt.Sprintf("%s %s", titleStyle.Render(nav.Page.Address), dimStyle.Render("["+nav.Kind.DisplayName()+"]"))
	if !nav.Eligible {
		header += " " + warnStyle.Render("outside the hierarchy")
	}
	fmt.Fprintln(w, header)

	blocks := make([]string, 0, len(nav.Navigation.Columns))
	for i, column := range nav.Navigation.Columns {
		title := column.Title
		if title == "" {
			title = "-"
		}
		lines := []string{dimStyle.Render(fmt.Sprintf("%d %s", i, title))}
		for _, page := range column.Pages {
			if page.Selected {
				lines = append(lines, selectedStyle.Render("> "+page.Title))
				continue
			}
			lines = append(lines, "  "+page.Title)
		}
		if len(column.Pages) == 0 {
			lines = append(lines, dimStyle.Render("  (empty)"))
		} else {
			lines = append(lines, dimStyle.Render(columnSummary(column.Pages)))
		}
		blocks = append(blocks, columnStyle.Render(strings.Join(lines, "\n")))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))

	crumbs := make([]string, 0, len(nav.Navigation.Breadcrumbs))
	for _, crumb := range nav.Navigation.Breadcrumbs {
		crumbs = append(crumbs, crumb.Title)
	}
	if len(crumbs) > 0 {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("path:"), strings.Join(crumbs, dimStyle.Render(" / ")))
	}
	if len(nav.Gaps) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("missing ancestors at columns %v", nav.Gaps)))
	}
}

// columnSummary counts the pages of a column per layout kind, e.g.
// "2 topics, 1 article".
func columnSummary(pages []sitenav.PageView) string {
	counts := make(map[navigation.LayoutKind]int, 3)
	for _, page := range pages {
		counts[navigation.ClassifyLayout(page.Layout)]++
	}
	parts := make([]string, 0, len(counts))
	for _, kind := range []navigation.LayoutKind{navigation.LayoutCategory, navigation.LayoutArticle, navigation.LayoutOther} {
		n := counts[kind]
		if n == 0 {
			continue
		}
		noun := kind.Plural()
		if n == 1 {
			noun = kind.DisplayName()
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, noun))
	}
	return strings.Join(parts, ", ")
}
