// Package patterns turns user-authored path expressions into canonical
// glob patterns with well-defined matching semantics. A `/` is a literal
// separator: `*` never crosses a directory boundary, only `**` does.
package patterns

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Normalize maps a raw pattern string to its canonical glob form. It is a
// total function: malformed glob syntax is caught by Compile, not here.
//
// The rewrite steps run in this exact order, each observing the output of
// the previous one:
//  1. trim surrounding whitespace
//  2. backslashes become forward slashes
//  3. leading "./" prefixes are stripped, repeatedly
//  4. a single leading "/" is stripped (root-relative, not absolute)
//  5. a trailing "/" means "this directory and everything under it":
//     "foo/" becomes "foo/**"; what step 4 left as exactly "/" becomes "**"
//  6. a pattern with no "/" is a basename pattern matching at any depth:
//     "README.md" becomes "**/README.md"
//
// The empty string normalizes to the empty string; callers must reject
// empty patterns upstream.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "\\", "/")

	for strings.HasPrefix(s, "./") {
		s = s[2:]
	}

	s = strings.TrimPrefix(s, "/")

	if strings.HasSuffix(s, "/") {
		// Whatever is left as exactly "/" is the whole tree.
		if s == "/" {
			return "**"
		}
		s = strings.TrimSuffix(s, "/") + "/**"
	}

	// A pattern that erased to nothing stays empty so Compile rejects it;
	// giving it the basename prefix would hide the mistake.
	if s == "" {
		return s
	}

	// "**" already matches everything; prefixing it again would only
	// break idempotence, not change the match set.
	if !strings.Contains(s, "/") && s != "**" {
		s = "**/" + s
	}

	return s
}

// Compiled is a rule pattern ready for matching. It retains the raw text
// so diagnostics can show users their own input.
type Compiled struct {
	// Raw is the pattern exactly as authored
	Raw string `json:"raw"`

	// Normalized is the canonical glob form
	Normalized string `json:"normalized"`
}

// Compile normalizes a raw pattern and validates the result as a glob.
func Compile(raw string) (*Compiled, error) {
	norm := Normalize(raw)
	if norm == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	if !doublestar.ValidatePattern(norm) {
		return nil, fmt.Errorf("invalid glob pattern %q", raw)
	}
	return &Compiled{Raw: raw, Normalized: norm}, nil
}

// Matches reports whether the pattern matches a /-separated relative path.
func (c *Compiled) Matches(path string) bool {
	ok, err := doublestar.Match(c.Normalized, path)
	return err == nil && ok
}
