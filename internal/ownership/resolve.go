package ownership

// Match is one rule that matched a queried path.
type Match struct {
	// Pattern is the rule's pattern as authored
	Pattern string `json:"pattern"`

	// Service is the rule's owning service
	Service string `json:"service"`

	// Line is the rule's 1-based line number in its source document
	Line int `json:"line"`

	// Source is the rule's source document
	Source string `json:"source"`
}

// Resolve returns the owning service for a path. The second return is
// false when no rule matches (the path is unmapped); resolution itself
// never fails.
func (rs *RuleSet) Resolve(path string) (string, bool) {
	service := ""
	found := false
	for i := range rs.rules {
		if rs.rules[i].Matches(path) {
			service = rs.rules[i].Service
			found = true
		}
	}
	return service, found
}

// Explain returns every rule matching the path, in declaration order. The
// last element is the winning rule, the same one Resolve reports.
// An empty result means the path is unmapped.
func (rs *RuleSet) Explain(path string) []Match {
	var out []Match
	for i := range rs.rules {
		r := &rs.rules[i]
		if r.Matches(path) {
			out = append(out, Match{
				Pattern: r.Pattern,
				Service: r.Service,
				Line:    r.Line,
				Source:  r.Source,
			})
		}
	}
	return out
}

// UnusedPatterns returns the raw pattern text of every rule that matched
// none of the candidate paths, in declaration order. Candidates are
// typically every git-tracked file.
func (rs *RuleSet) UnusedPatterns(candidates []string) []string {
	used := make([]bool, len(rs.rules))
	for _, path := range candidates {
		for i := range rs.rules {
			if used[i] {
				continue
			}
			if rs.rules[i].Matches(path) {
				used[i] = true
			}
		}
	}

	var unused []string
	for i := range rs.rules {
		if !used[i] {
			unused = append(unused, rs.rules[i].Pattern)
		}
	}
	return unused
}
