package main

import (
	"strings"
	"testing"

	"serviceowners/internal/lint"
	"serviceowners/internal/ownership"
)

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(&WhoOwnsResponse{}, "xml"); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestFormatWhoOwnsJSON(t *testing.T) {
	resp := &WhoOwnsResponse{Path: "src/api/server.go", Service: "api", Mapped: true}
	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, `"service": "api"`) {
		t.Errorf("json missing service:\n%s", out)
	}
	if !strings.Contains(out, `"mapped": true`) {
		t.Errorf("json missing mapped flag:\n%s", out)
	}
}

func TestFormatWhoOwnsHumanUnmapped(t *testing.T) {
	out, err := FormatResponse(&WhoOwnsResponse{Path: "README.md"}, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "README.md: (unmapped)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFormatWhoOwnsHumanMarksWinner(t *testing.T) {
	resp := &WhoOwnsResponse{
		Path:    "src/api/server.go",
		Service: "api",
		Mapped:  true,
		Matches: []ownership.Match{
			{Pattern: "src/**", Service: "platform", Line: 1},
			{Pattern: "src/api/**", Service: "api", Line: 2},
		},
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "src/api/server.go: api") {
		t.Errorf("missing resolution line:\n%s", out)
	}
	// The last match carries the winner marker, earlier ones do not.
	if !strings.Contains(out, "* line 2: src/api/** -> api") {
		t.Errorf("winner not marked:\n%s", out)
	}
	if strings.Contains(out, "* line 1:") {
		t.Errorf("non-winner marked:\n%s", out)
	}
}

func TestFormatImpactedHuman(t *testing.T) {
	resp := &ImpactedResponse{
		Diff: "origin/main...HEAD",
		Services: []ImpactedService{
			{Name: "api", FileCount: 3, Owners: "@org/api-team", Files: []string{"a.go", "b.go"}, Truncated: 1},
		},
		UnmappedFiles: []string{"README.md"},
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{
		"Diff: origin/main...HEAD",
		"api (3 files)",
		"owners: @org/api-team",
		"... and 1 more",
		"Unmapped files: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLintHuman(t *testing.T) {
	out, err := FormatResponse(&LintResponse{}, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "No lint issues found.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	resp := &LintResponse{
		Issues: []lint.Issue{
			{Severity: lint.SeverityError, Code: lint.CodeUnknownService,
				Message: "SERVICEOWNERS references unknown service 'apii'.",
				File:    "SERVICEOWNERS", Line: 4, Hint: "Add it to services.yaml (or fix the spelling)."},
		},
		Errors: 1,
	}
	out, err = FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{"ERROR", "UNKNOWN_SERVICE", "SERVICEOWNERS:4:", "1 issue(s) found."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
