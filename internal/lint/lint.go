// Package lint checks a SERVICEOWNERS rule set (plus the optional service
// catalog) for mistakes that parsing alone cannot catch.
//
// The default checks are fast and low-noise. The expensive ones (dead
// patterns, overlap scanning) need the list of tracked files and are
// opt-in. Strict mode turns warnings into errors for CI enforcement.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"serviceowners/internal/ownership"
	"serviceowners/internal/services"
)

// Severity of a lint issue
type Severity string

const (
	// SeverityError fails the lint
	SeverityError Severity = "ERROR"
	// SeverityWarn is advisory unless strict mode is on
	SeverityWarn Severity = "WARN"
)

// Issue codes
const (
	CodeDuplicatePattern   = "DUPLICATE_PATTERN"
	CodeUnknownService     = "UNKNOWN_SERVICE"
	CodeServiceNoContact   = "SERVICE_HAS_NO_CONTACT"
	CodePatternMatchesNone = "PATTERN_MATCHES_NOTHING"
	CodeOverlappingRules   = "OVERLAPPING_RULES"
	CodeGitRequired        = "GIT_REQUIRED"
)

// Issue is one lint finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// Result is the outcome of a lint run.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue is a warning.
func (r *Result) HasWarnings() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityWarn {
			return true
		}
	}
	return false
}

// Options controls which checks run and how findings are graded.
type Options struct {
	// Strict upgrades warnings to errors
	Strict bool

	// CheckMatches flags patterns that match no tracked file
	CheckMatches bool

	// CheckOverlaps scans tracked files for cross-service overlaps
	CheckOverlaps bool

	// TrackedFiles is the path corpus for the two checks above,
	// typically git ls-files output. The caller supplies it so linting
	// stays a pure in-memory pass.
	TrackedFiles []string

	// OverlapExampleCap bounds how many overlap examples are reported
	OverlapExampleCap int
}

const defaultOverlapExampleCap = 25

// Run lints the rule set.
func Run(rs *ownership.RuleSet, catalog services.Catalog, opts Options) *Result {
	var issues []Issue
	rules := rs.Rules()

	warnSeverity := SeverityWarn
	if opts.Strict {
		warnSeverity = SeverityError
	}

	// Duplicate patterns are nearly always a mistake.
	seen := map[string]*ownership.Rule{}
	for i := range rules {
		r := &rules[i]
		if prev, ok := seen[r.Pattern]; ok && prev.Service != r.Service {
			issues = append(issues, Issue{
				Severity: warnSeverity,
				Code:     CodeDuplicatePattern,
				Message: fmt.Sprintf(
					"Pattern '%s' is defined multiple times (last-match wins). Previous: %s (line %d), this: %s (line %d).",
					r.Pattern, prev.Service, prev.Line, r.Service, r.Line),
				File: r.Source,
				Line: r.Line,
				Hint: "Remove duplicates or make precedence explicit.",
			})
		} else if !ok {
			seen[r.Pattern] = r
		}
	}

	if len(catalog) > 0 {
		for i := range rules {
			r := &rules[i]
			if _, ok := catalog[r.Service]; !ok {
				issues = append(issues, Issue{
					Severity: warnSeverity,
					Code:     CodeUnknownService,
					Message:  fmt.Sprintf("SERVICEOWNERS references unknown service '%s'.", r.Service),
					File:     r.Source,
					Line:     r.Line,
					Hint:     "Add it to services.yaml (or fix the spelling).",
				})
			}
		}

		names := make([]string, 0, len(catalog))
		for name := range catalog {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if svc := catalog[name]; !svc.HasContact() {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     CodeServiceNoContact,
					Message:  fmt.Sprintf("Service '%s' has no owners and no contact (slack/email).", name),
					Hint:     "Add owners/contact so PRs have someone to page.",
				})
			}
		}
	}

	if opts.CheckMatches {
		if opts.TrackedFiles == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeGitRequired,
				Message:  "--check-matches requires the list of git-tracked files.",
			})
		} else {
			for _, pattern := range rs.UnusedPatterns(opts.TrackedFiles) {
				line, source := ruleLocation(rules, pattern)
				issues = append(issues, Issue{
					Severity: warnSeverity,
					Code:     CodePatternMatchesNone,
					Message:  fmt.Sprintf("Pattern '%s' matches no git-tracked files.", pattern),
					File:     source,
					Line:     line,
					Hint:     "Remove it or fix the glob (or ignore if files are generated later).",
				})
			}
		}
	}

	if opts.CheckOverlaps {
		if opts.TrackedFiles == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeGitRequired,
				Message:  "--check-overlaps requires the list of git-tracked files.",
			})
		} else {
			maxExamples := opts.OverlapExampleCap
			if maxExamples <= 0 {
				maxExamples = defaultOverlapExampleCap
			}

			var examples []string
			for _, path := range opts.TrackedFiles {
				matches := rs.Explain(path)
				if len(matches) < 2 {
					continue
				}
				svcs := make([]string, len(matches))
				distinct := map[string]bool{}
				for i, m := range matches {
					svcs[i] = m.Service
					distinct[m.Service] = true
				}
				if len(distinct) > 1 {
					examples = append(examples, path+" -> "+strings.Join(svcs, ", "))
					if len(examples) >= maxExamples {
						break
					}
				}
			}

			if len(examples) > 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     CodeOverlappingRules,
					Message: "Some files match multiple services (last-match wins). Examples: " +
						strings.Join(examples, "; "),
					Hint: "Often OK. If it's confusing, tighten globs or add comments.",
				})
			}
		}
	}

	return &Result{Issues: issues}
}

func ruleLocation(rules []ownership.Rule, pattern string) (int, string) {
	for i := range rules {
		if rules[i].Pattern == pattern {
			return rules[i].Line, rules[i].Source
		}
	}
	return 0, ""
}
