// Package impact aggregates ownership resolution over a set of changed
// files into a per-service report.
package impact

import (
	"sort"

	"serviceowners/internal/ownership"
)

// Report groups changed files by owning service. All slices are sorted
// and deduplicated so output is reproducible regardless of input order.
type Report struct {
	// ServicesToFiles maps service name to the changed files it owns
	ServicesToFiles map[string][]string `json:"services"`

	// UnmappedFiles are changed files no rule matched
	UnmappedFiles []string `json:"unmappedFiles"`

	// Overlaps maps a path to the services of every rule that matched it,
	// in declaration order, for paths matched by more than one rule
	Overlaps map[string][]string `json:"overlaps,omitempty"`
}

// Compute resolves every changed file against the rule set. Each file is
// an independent query; only the aggregation below imposes an order.
func Compute(rs *ownership.RuleSet, changedFiles []string) *Report {
	servicesToFiles := make(map[string][]string)
	overlaps := make(map[string][]string)
	var unmapped []string

	for _, path := range changedFiles {
		matches := rs.Explain(path)
		if len(matches) == 0 {
			unmapped = append(unmapped, path)
			continue
		}

		winner := matches[len(matches)-1].Service
		servicesToFiles[winner] = append(servicesToFiles[winner], path)

		if len(matches) > 1 {
			svcs := make([]string, len(matches))
			for i, m := range matches {
				svcs[i] = m.Service
			}
			overlaps[path] = svcs
		}
	}

	for svc, files := range servicesToFiles {
		servicesToFiles[svc] = sortUnique(files)
	}

	return &Report{
		ServicesToFiles: servicesToFiles,
		UnmappedFiles:   sortUnique(unmapped),
		Overlaps:        overlaps,
	}
}

// ImpactedServices returns the impacted service names, sorted.
func (r *Report) ImpactedServices() []string {
	out := make([]string, 0, len(r.ServicesToFiles))
	for svc := range r.ServicesToFiles {
		out = append(out, svc)
	}
	sort.Strings(out)
	return out
}

// FileCountFor returns how many changed files a service owns.
func (r *Report) FileCountFor(service string) int {
	return len(r.ServicesToFiles[service])
}

// TotalFiles returns the number of changed files, mapped or not.
func (r *Report) TotalFiles() int {
	total := len(r.UnmappedFiles)
	for _, files := range r.ServicesToFiles {
		total += len(files)
	}
	return total
}

func sortUnique(in []string) []string {
	if len(in) == 0 {
		return in
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
