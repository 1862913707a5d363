// Package ownership parses SERVICEOWNERS rule documents and resolves
// repository paths to owning services.
//
// Precedence is positional: when several rules match a path, the rule with
// the highest declaration index wins (last match wins). This is a deliberate
// index-order tie-break, not a specificity heuristic: broad rules go first
// and narrow exceptions are appended after them.
package ownership

import (
	"os"
	"strconv"
	"strings"

	svcerrors "serviceowners/internal/errors"
	"serviceowners/internal/patterns"
)

// Rule is one (pattern, service) pair from a SERVICEOWNERS document.
type Rule struct {
	// Pattern is the pattern exactly as authored
	Pattern string `json:"pattern"`

	// Service is the owning service identifier (verbatim, may contain spaces)
	Service string `json:"service"`

	// Line is the 1-based line number in the source document
	Line int `json:"line"`

	// Source identifies the document the rule came from
	Source string `json:"source"`

	compiled *patterns.Compiled
}

// Normalized returns the canonical glob form of the rule's pattern.
func (r *Rule) Normalized() string {
	return r.compiled.Normalized
}

// Matches reports whether the rule's pattern matches the given path.
func (r *Rule) Matches(path string) bool {
	return r.compiled.Matches(path)
}

// RuleSet is an ordered, immutable sequence of rules. Declaration order is
// semantically significant and is never sorted or deduplicated.
// A RuleSet is safe for concurrent readers.
type RuleSet struct {
	rules  []Rule
	source string
}

// Parse builds a RuleSet from a rule document. Construction is
// all-or-nothing: any malformed line fails the whole document.
//
// Line format: <pattern><whitespace><service>. The first whitespace run is
// the only delimiter, so service text may contain spaces. Blank lines and
// full-line # comments are skipped.
func Parse(content string, source string) (*RuleSet, error) {
	var rules []Rule

	for idx, raw := range strings.Split(content, "\n") {
		lineNo := idx + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		patTok, rest, found := cutWhitespace(line)
		service := strings.TrimSpace(rest)
		if !found || service == "" {
			return nil, svcerrors.New(svcerrors.ParseError,
				"expected '<pattern> <service>', got "+strconv.Quote(strings.TrimRight(raw, "\r"))).AtLine(source, lineNo)
		}

		if patterns.Normalize(patTok) == "" {
			return nil, svcerrors.New(svcerrors.ParseError,
				"pattern "+strconv.Quote(patTok)+" is empty after normalization").AtLine(source, lineNo)
		}

		compiled, err := patterns.Compile(patTok)
		if err != nil {
			return nil, svcerrors.Wrap(svcerrors.PatternInvalid,
				"invalid pattern "+strconv.Quote(patTok), err).AtLine(source, lineNo)
		}

		rules = append(rules, Rule{
			Pattern:  patTok,
			Service:  service,
			Line:     lineNo,
			Source:   source,
			compiled: compiled,
		})
	}

	return &RuleSet{rules: rules, source: source}, nil
}

// Load reads and parses a SERVICEOWNERS file from disk.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, svcerrors.Wrap(svcerrors.ParseError, "cannot read SERVICEOWNERS file", err)
	}
	return Parse(string(data), path)
}

// Rules returns the rules in declaration order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Source returns the document identifier the rule set was built from.
func (rs *RuleSet) Source() string {
	return rs.source
}

// cutWhitespace splits s around its first run of whitespace.
func cutWhitespace(s string) (before, after string, found bool) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimLeft(s[i:], " \t"), true
}
