package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"serviceowners/internal/lint"
	"serviceowners/internal/ownership"
	"serviceowners/internal/services"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *WhoOwnsResponse:
		return formatWhoOwnsHuman(v)
	case *ImpactedResponse:
		return formatImpactedHuman(v)
	case *LintResponse:
		return formatLintHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatWhoOwnsHuman(resp *WhoOwnsResponse) (string, error) {
	var b strings.Builder

	if resp.Mapped {
		b.WriteString(fmt.Sprintf("%s: %s\n", resp.Path, resp.Service))
	} else {
		b.WriteString(fmt.Sprintf("%s: (unmapped)\n", resp.Path))
	}

	if resp.Metadata != nil {
		if owners := resp.Metadata.OwnersLine(); owners != "" {
			b.WriteString(fmt.Sprintf("  owners:  %s\n", owners))
		}
		if resp.Metadata.Contact.Slack != "" {
			b.WriteString(fmt.Sprintf("  slack:   %s\n", resp.Metadata.Contact.Slack))
		}
		if resp.Metadata.Contact.Email != "" {
			b.WriteString(fmt.Sprintf("  email:   %s\n", resp.Metadata.Contact.Email))
		}
		if resp.Metadata.Oncall != "" {
			b.WriteString(fmt.Sprintf("  oncall:  %s\n", resp.Metadata.Oncall))
		}
		if resp.Metadata.Runbook != "" {
			b.WriteString(fmt.Sprintf("  runbook: %s\n", resp.Metadata.Runbook))
		}
		if resp.Metadata.Docs != "" {
			b.WriteString(fmt.Sprintf("  docs:    %s\n", resp.Metadata.Docs))
		}
	}

	if len(resp.Matches) > 0 {
		b.WriteString("\nMatched rules (last match wins):\n")
		for i, m := range resp.Matches {
			marker := " "
			if i == len(resp.Matches)-1 {
				marker = "*"
			}
			b.WriteString(fmt.Sprintf("  %s line %d: %s -> %s\n", marker, m.Line, m.Pattern, m.Service))
		}
	}

	return b.String(), nil
}

func formatImpactedHuman(resp *ImpactedResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Diff: %s\n", resp.Diff))
	b.WriteString(fmt.Sprintf("Impacted services: %d\n\n", len(resp.Services)))

	for _, svc := range resp.Services {
		b.WriteString(fmt.Sprintf("%s (%d files)\n", svc.Name, svc.FileCount))
		if svc.Owners != "" {
			b.WriteString(fmt.Sprintf("  owners: %s\n", svc.Owners))
		}
		for _, f := range svc.Files {
			b.WriteString(fmt.Sprintf("  - %s\n", f))
		}
		if svc.Truncated > 0 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", svc.Truncated))
		}
	}

	if len(resp.UnmappedFiles) > 0 {
		b.WriteString(fmt.Sprintf("\nUnmapped files: %d\n", len(resp.UnmappedFiles)))
		for _, f := range resp.UnmappedFiles {
			b.WriteString(fmt.Sprintf("  - %s\n", f))
		}
	}

	return b.String(), nil
}

func formatLintHuman(resp *LintResponse) (string, error) {
	if len(resp.Issues) == 0 {
		return "No lint issues found.\n", nil
	}

	var b strings.Builder
	for _, issue := range resp.Issues {
		loc := ""
		if issue.File != "" && issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d: ", issue.File, issue.Line)
		}
		b.WriteString(fmt.Sprintf("%-5s %s %s%s\n", issue.Severity, issue.Code, loc, issue.Message))
		if issue.Hint != "" {
			b.WriteString(fmt.Sprintf("      hint: %s\n", issue.Hint))
		}
	}
	b.WriteString(fmt.Sprintf("\n%d issue(s) found.\n", len(resp.Issues)))
	return b.String(), nil
}

// WhoOwnsResponse is the who-owns command payload.
type WhoOwnsResponse struct {
	Path     string            `json:"path"`
	Service  string            `json:"service,omitempty"`
	Mapped   bool              `json:"mapped"`
	Matches  []ownership.Match `json:"matches,omitempty"`
	Metadata *services.Service `json:"metadata,omitempty"`
}

// ImpactedService is one service entry in the impacted command payload.
type ImpactedService struct {
	Name      string   `json:"name"`
	FileCount int      `json:"fileCount"`
	Owners    string   `json:"owners,omitempty"`
	Files     []string `json:"files,omitempty"`
	Truncated int      `json:"truncated,omitempty"`
}

// ImpactedResponse is the impacted command payload.
type ImpactedResponse struct {
	Diff          string            `json:"diff"`
	Services      []ImpactedService `json:"services"`
	UnmappedFiles []string          `json:"unmappedFiles"`
}

// LintResponse is the lint command payload.
type LintResponse struct {
	Issues []lint.Issue `json:"issues"`
	Errors int          `json:"errors"`
	Warns  int          `json:"warnings"`
}
