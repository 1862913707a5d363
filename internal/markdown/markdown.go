// Package markdown renders impact and lint results as GitHub-flavored
// markdown, both for step summaries and for the compact PR comment.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"serviceowners/internal/impact"
	"serviceowners/internal/lint"
	"serviceowners/internal/services"
)

// ImpactOptions controls the full impact rendering.
type ImpactOptions struct {
	Title              string
	IncludeFiles       bool
	MaxFilesPerService int
	IncludeUnmapped    bool
	ShowMetadata       bool
}

// DefaultMaxFilesPerService bounds file lists in rendered reports.
const DefaultMaxFilesPerService = 50

// rankedServices orders services by descending file count, then name, so
// the biggest impact reads first and output stays stable.
func rankedServices(report *impact.Report) []string {
	names := report.ImpactedServices()
	sort.SliceStable(names, func(i, j int) bool {
		ci, cj := report.FileCountFor(names[i]), report.FileCountFor(names[j])
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func mdLink(label, target string) string {
	return fmt.Sprintf("[%s](%s)", label, target)
}

// RenderImpact renders the full impact report.
func RenderImpact(report *impact.Report, catalog services.Catalog, opts ImpactOptions) string {
	if opts.Title == "" {
		opts.Title = "Impacted services"
	}
	if opts.MaxFilesPerService <= 0 {
		opts.MaxFilesPerService = DefaultMaxFilesPerService
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", opts.Title)

	if len(report.ServicesToFiles) == 0 && len(report.UnmappedFiles) == 0 {
		b.WriteString("_No changed files detected._")
		return b.String()
	}

	ranked := rankedServices(report)
	fmt.Fprintf(&b, "### Impacted services (%d)\n\n", len(ranked))

	for _, name := range ranked {
		files := report.ServicesToFiles[name]
		bits := []string{
			fmt.Sprintf("**%s**", name),
			fmt.Sprintf("(%d file%s)", len(files), plural(len(files))),
		}

		if opts.ShowMetadata {
			if meta, ok := catalog[name]; ok {
				if owners := meta.OwnersLine(); owners != "" {
					bits = append(bits, "owners: "+owners)
				}
				if meta.Contact.Slack != "" {
					bits = append(bits, "slack: `"+meta.Contact.Slack+"`")
				}
				if meta.Oncall != "" {
					bits = append(bits, "oncall: "+meta.Oncall)
				}
				if meta.Runbook != "" {
					bits = append(bits, mdLink("runbook", meta.Runbook))
				}
				if meta.Docs != "" {
					bits = append(bits, mdLink("docs", meta.Docs))
				}
			}
		}

		b.WriteString("- " + strings.Join(bits, " | ") + "\n")

		if opts.IncludeFiles {
			shown := files
			if len(shown) > opts.MaxFilesPerService {
				shown = shown[:opts.MaxFilesPerService]
			}
			for _, f := range shown {
				fmt.Fprintf(&b, "  - `%s`\n", f)
			}
			if len(files) > len(shown) {
				fmt.Fprintf(&b, "  - _and %d more_\n", len(files)-len(shown))
			}
		}
	}
	b.WriteString("\n")

	if opts.IncludeUnmapped && len(report.UnmappedFiles) > 0 {
		fmt.Fprintf(&b, "### Unmapped files (%d)\n\n", len(report.UnmappedFiles))
		shown := report.UnmappedFiles
		if len(shown) > opts.MaxFilesPerService {
			shown = shown[:opts.MaxFilesPerService]
		}
		for _, f := range shown {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
		if len(report.UnmappedFiles) > len(shown) {
			fmt.Fprintf(&b, "- _and %d more_\n", len(report.UnmappedFiles)-len(shown))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// CommentMarker returns the hidden begin marker for a PR comment, used to
// find an existing comment to update.
func CommentMarker(marker string) string {
	return "<!-- " + marker + ":begin -->"
}

// RenderComment renders the compact, collapsible PR-comment body. The
// body is wrapped in hidden begin/end markers so later runs can find and
// update the same comment instead of stacking new ones.
func RenderComment(report *impact.Report, catalog services.Catalog, marker, title string) string {
	var b strings.Builder
	b.WriteString(CommentMarker(marker) + "\n")
	fmt.Fprintf(&b, "## %s\n\n", title)

	ranked := rankedServices(report)
	fmt.Fprintf(&b, "**Impacted services:** %d\n\n", len(ranked))

	if len(ranked) > 0 {
		for _, name := range ranked {
			files := report.ServicesToFiles[name]
			bits := []string{
				fmt.Sprintf("**%s**", name),
				fmt.Sprintf("%d file%s", len(files), plural(len(files))),
			}
			if meta, ok := catalog[name]; ok {
				if owners := meta.OwnersLine(); owners != "" {
					bits = append(bits, "owners: "+owners)
				}
				if meta.Contact.Slack != "" {
					bits = append(bits, "slack: `"+meta.Contact.Slack+"`")
				}
			}
			b.WriteString("- " + strings.Join(bits, " | ") + "\n")
		}
	} else {
		b.WriteString("_None_\n")
	}
	b.WriteString("\n")

	if len(report.UnmappedFiles) > 0 {
		fmt.Fprintf(&b, "**Unmapped files:** %d\n\n", len(report.UnmappedFiles))
		shown := report.UnmappedFiles
		if len(shown) > 10 {
			shown = shown[:10]
		}
		for _, f := range shown {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
		if len(report.UnmappedFiles) > len(shown) {
			fmt.Fprintf(&b, "- _and %d more_\n", len(report.UnmappedFiles)-len(shown))
		}
		b.WriteString("\n")
	}

	b.WriteString("<details>\n<summary>Changed files by service</summary>\n\n")
	if len(ranked) > 0 {
		for _, name := range ranked {
			fmt.Fprintf(&b, "### %s\n", name)
			files := report.ServicesToFiles[name]
			shown := files
			if len(shown) > DefaultMaxFilesPerService {
				shown = shown[:DefaultMaxFilesPerService]
			}
			for _, f := range shown {
				fmt.Fprintf(&b, "- `%s`\n", f)
			}
			if len(files) > len(shown) {
				fmt.Fprintf(&b, "- _and %d more_\n", len(files)-len(shown))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("_No mapped services._\n\n")
	}
	b.WriteString("</details>\n\n")
	b.WriteString("<!-- " + marker + ":end -->")

	return b.String()
}

// RenderLint renders a lint result.
func RenderLint(result *lint.Result, title string) string {
	if title == "" {
		title = "Lint"
	}
	if len(result.Issues) == 0 {
		return fmt.Sprintf("### %s\n\nNo lint issues found.\n", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", title)
	for _, issue := range result.Issues {
		loc := ""
		if issue.File != "" && issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d: ", issue.File, issue.Line)
		}
		hint := ""
		if issue.Hint != "" {
			hint = fmt.Sprintf(" _(hint: %s)_", issue.Hint)
		}
		icon := "WARN"
		if issue.Severity == lint.SeverityError {
			icon = "ERROR"
		}
		fmt.Fprintf(&b, "- %s **%s**: %s%s%s\n", icon, issue.Code, loc, issue.Message, hint)
	}
	b.WriteString("\n")
	return b.String()
}
