package patterns

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"src/**", "src/**"},
		{"  src/**  ", "src/**"},
		{"docs/", "docs/**"},
		{"/docs/", "docs/**"},
		{"/foo/bar", "foo/bar"},
		{"./foo", "**/foo"},
		{"././foo/bar", "foo/bar"},
		{"README.md", "**/README.md"},
		{"*.md", "**/*.md"},
		// stripping the single leading "/" leaves "/", the whole tree
		{"//", "**"},
		// stripping the single leading "/" leaves nothing
		{"/", ""},
		{"a\\b\\c", "a/b/c"},
		{"", ""},
		{"   ", ""},
		{"./", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"src/**", "docs/", "/foo/bar", "./x", "README.md", "*.md", "//",
		"a\\b", "foo/bar/baz.go", "**", "cmd/*/main.go",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		if once == "" {
			continue
		}
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalizeTrailingSlashEquivalence(t *testing.T) {
	// "foo/" must match the same paths as "foo" + "/**"
	a := Normalize("foo/")
	b := Normalize("foo/bar/") // nested form for good measure
	if a != "foo/**" {
		t.Errorf("Normalize(\"foo/\") = %q, want \"foo/**\"", a)
	}
	if b != "foo/bar/**" {
		t.Errorf("Normalize(\"foo/bar/\") = %q, want \"foo/bar/**\"", b)
	}
}

func TestNormalizeLeadingSlashEquivalence(t *testing.T) {
	if Normalize("/foo/bar") != Normalize("foo/bar") {
		t.Errorf("leading slash should not change normalization: %q vs %q",
			Normalize("/foo/bar"), Normalize("foo/bar"))
	}
}

func TestCompileRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "./", "./././", "/"} {
		if _, err := Compile(raw); err == nil {
			t.Errorf("Compile(%q) should fail for empty-normalizing pattern", raw)
		}
	}
}

func TestCompileRejectsBadGlob(t *testing.T) {
	if _, err := Compile("src/[unclosed"); err == nil {
		t.Error("Compile should reject an unclosed character class")
	}
}

func TestBasenameMatchesAnyDepth(t *testing.T) {
	c, err := Compile("README.md")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	for _, path := range []string{"README.md", "docs/README.md", "a/b/README.md"} {
		if !c.Matches(path) {
			t.Errorf("pattern README.md should match %q", path)
		}
	}
	if c.Matches("docs/README.mdx") {
		t.Error("pattern README.md should not match README.mdx")
	}
}

func TestSegmentWildcardStaysInSegment(t *testing.T) {
	c, err := Compile("*.md")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	// *.md is a basename glob: it matches a .md file at any depth, but the
	// star itself never spans a / boundary.
	if !c.Matches("README.md") {
		t.Error("*.md should match README.md")
	}
	if !c.Matches("docs/guide.md") {
		t.Error("*.md should match docs/guide.md")
	}

	anchored, err := Compile("docs/*")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !anchored.Matches("docs/a.md") {
		t.Error("docs/* should match docs/a.md")
	}
	if anchored.Matches("docs/a/b.md") {
		t.Error("docs/* should not cross into docs/a/b.md")
	}
	if anchored.Matches("x/docs/a.md") {
		t.Error("docs/* is anchored to the root, should not match x/docs/a.md")
	}
}

func TestDoubleStarCrossesDirectories(t *testing.T) {
	c, err := Compile("docs/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !c.Matches("docs/a.md") {
		t.Error("docs/** should match docs/a.md")
	}
	if !c.Matches("docs/a/b.md") {
		t.Error("docs/** should match docs/a/b.md")
	}
	if c.Matches("src/a.md") {
		t.Error("docs/** should not match src/a.md")
	}
}

func TestDirectoryShorthand(t *testing.T) {
	c, err := Compile("docs/")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !c.Matches("docs/a.md") || !c.Matches("docs/a/b.md") {
		t.Error("docs/ should match everything under docs, recursively")
	}
}

func TestWholeTreePattern(t *testing.T) {
	// "//" survives the leading-slash strip as "/" and matches everything.
	c, err := Compile("//")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if c.Normalized != "**" {
		t.Errorf("Normalized = %q, want \"**\"", c.Normalized)
	}
	for _, path := range []string{"README.md", "a/b/c.go", "deep/ly/nested/file"} {
		if !c.Matches(path) {
			t.Errorf("pattern // should match %q", path)
		}
	}
}

func TestCompileKeepsRawText(t *testing.T) {
	c, err := Compile("/docs/")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if c.Raw != "/docs/" {
		t.Errorf("Raw = %q, want the authored text \"/docs/\"", c.Raw)
	}
	if c.Normalized != "docs/**" {
		t.Errorf("Normalized = %q, want \"docs/**\"", c.Normalized)
	}
}
