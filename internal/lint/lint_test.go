package lint

import (
	"testing"

	"serviceowners/internal/ownership"
	"serviceowners/internal/services"
)

func mustParse(t *testing.T, content string) *ownership.RuleSet {
	t.Helper()
	rs, err := ownership.Parse(content, "SERVICEOWNERS")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return rs
}

func hasCode(r *Result, code string) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func TestDuplicatePatternWarns(t *testing.T) {
	rs := mustParse(t, "src/** api\nsrc/** web\n")
	res := Run(rs, nil, Options{})
	if !hasCode(res, CodeDuplicatePattern) {
		t.Error("expected DUPLICATE_PATTERN issue")
	}
	if res.HasErrors() {
		t.Error("duplicate pattern should be a warning by default")
	}
}

func TestDuplicateSamePatternSameServiceIsFine(t *testing.T) {
	rs := mustParse(t, "src/** api\nsrc/** api\n")
	res := Run(rs, nil, Options{})
	if hasCode(res, CodeDuplicatePattern) {
		t.Error("same pattern mapped to the same service is not a conflict")
	}
}

func TestUnknownServiceWarnsWhenCatalogPresent(t *testing.T) {
	rs := mustParse(t, "src/** api\n")
	cat, err := services.Parse([]byte("web: {}\n"), "services.yaml")
	if err != nil {
		t.Fatalf("services.Parse failed: %v", err)
	}

	res := Run(rs, cat, Options{})
	if !hasCode(res, CodeUnknownService) {
		t.Error("expected UNKNOWN_SERVICE issue")
	}

	// No catalog, no reference checks.
	res = Run(rs, nil, Options{})
	if hasCode(res, CodeUnknownService) {
		t.Error("UNKNOWN_SERVICE should not fire without a catalog")
	}
}

func TestServiceWithoutContactWarns(t *testing.T) {
	rs := mustParse(t, "src/** web\n")
	cat, err := services.Parse([]byte("web: {}\n"), "services.yaml")
	if err != nil {
		t.Fatalf("services.Parse failed: %v", err)
	}
	res := Run(rs, cat, Options{})
	if !hasCode(res, CodeServiceNoContact) {
		t.Error("expected SERVICE_HAS_NO_CONTACT issue")
	}
}

func TestStrictUpgradesWarnings(t *testing.T) {
	rs := mustParse(t, "src/** api\nsrc/** web\n")
	res := Run(rs, nil, Options{Strict: true})
	if !res.HasErrors() {
		t.Error("strict mode should upgrade duplicate-pattern warnings to errors")
	}
}

func TestCheckMatchesFlagsDeadPatterns(t *testing.T) {
	rs := mustParse(t, "src/** api\nnever/** ghost\n")
	res := Run(rs, nil, Options{
		CheckMatches: true,
		TrackedFiles: []string{"src/a.go", "README.md"},
	})
	if !hasCode(res, CodePatternMatchesNone) {
		t.Error("expected PATTERN_MATCHES_NOTHING for never/**")
	}

	var dead *Issue
	for i := range res.Issues {
		if res.Issues[i].Code == CodePatternMatchesNone {
			dead = &res.Issues[i]
		}
	}
	if dead != nil && dead.Line != 2 {
		t.Errorf("dead-pattern issue should carry line 2, got %d", dead.Line)
	}
}

func TestCheckMatchesWithoutTrackedFiles(t *testing.T) {
	rs := mustParse(t, "src/** api\n")
	res := Run(rs, nil, Options{CheckMatches: true})
	if !hasCode(res, CodeGitRequired) || !res.HasErrors() {
		t.Error("check-matches without a corpus is a GIT_REQUIRED error")
	}
}

func TestCheckOverlapsReportsCrossServiceMatches(t *testing.T) {
	rs := mustParse(t, "**/*.go core\ncmd/** cli\n")
	res := Run(rs, nil, Options{
		CheckOverlaps: true,
		TrackedFiles:  []string{"cmd/main.go", "pkg/x.go"},
	})
	if !hasCode(res, CodeOverlappingRules) {
		t.Error("expected OVERLAPPING_RULES issue")
	}
}

func TestCheckOverlapsSameServiceIsQuiet(t *testing.T) {
	rs := mustParse(t, "cmd/** cli\ncmd/main.go cli\n")
	res := Run(rs, nil, Options{
		CheckOverlaps: true,
		TrackedFiles:  []string{"cmd/main.go"},
	})
	if hasCode(res, CodeOverlappingRules) {
		t.Error("overlap within one service is not worth reporting")
	}
}

func TestCleanRuleSet(t *testing.T) {
	rs := mustParse(t, "src/** api\ndocs/** docs\n")
	res := Run(rs, nil, Options{TrackedFiles: []string{"src/a.go", "docs/b.md"}, CheckMatches: true, CheckOverlaps: true})
	if len(res.Issues) != 0 {
		t.Errorf("expected no issues, got %v", res.Issues)
	}
}
