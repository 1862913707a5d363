// Package bootstrap generates a starter SERVICEOWNERS document from an
// existing CODEOWNERS file. The inferred service names are deliberately
// approximate: the output is a starting point for manual review, not
// authoritative mapping.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	svcerrors "serviceowners/internal/errors"
)

// FallbackService is used when nothing in a rule suggests a name.
const FallbackService = "unknown_service"

// throwaway path segments that never make a useful service name
var stopSegments = map[string]bool{
	"*":        true,
	"**":       true,
	"src":      true,
	"lib":      true,
	"packages": true,
	"apps":     true,
}

// FindCodeowners looks for a CODEOWNERS file in the standard locations.
// Returns empty when none exists.
func FindCodeowners(repoRoot string) string {
	locations := []string{
		"CODEOWNERS",
		filepath.Join(".github", "CODEOWNERS"),
		filepath.Join("docs", "CODEOWNERS"),
	}
	for _, loc := range locations {
		path := filepath.Join(repoRoot, loc)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// InferServiceName derives a service label from a CODEOWNERS pattern and
// its owner list. Preference order: last meaningful path segment, then the
// first owner handle, then a fixed placeholder.
func InferServiceName(pattern string, owners []string) string {
	p := strings.Trim(pattern, "/")

	var candidates []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && !stopSegments[seg] {
			candidates = append(candidates, seg)
		}
	}

	if len(candidates) > 0 {
		return sanitize(candidates[len(candidates)-1])
	}

	if len(owners) > 0 {
		o := strings.TrimPrefix(owners[0], "@")
		if _, after, found := strings.Cut(o, "/"); found {
			o = after
		}
		o = strings.ToLower(strings.ReplaceAll(o, "-", "_"))
		if o != "" {
			return o
		}
	}

	return FallbackService
}

// sanitize lowercases a segment and replaces every non-alphanumeric rune
// with an underscore. A punctuation-only segment comes back as underscores;
// the owner fallback only applies when no segment survives the stoplist.
func sanitize(seg string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(seg) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Generate renders a SERVICEOWNERS document from CODEOWNERS content. Each
// rule line becomes "<pattern> <inferred-service>" in the same two-field
// format the parser reads, so the output can be reviewed and used as-is.
func Generate(codeownersContent string) string {
	var b strings.Builder
	b.WriteString("# Generated from CODEOWNERS by serviceowners init\n")
	b.WriteString("# pattern            service\n")

	for _, raw := range strings.Split(codeownersContent, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		pattern := fields[0]
		owners := fields[1:]
		fmt.Fprintf(&b, "%-20s %s\n", pattern, InferServiceName(pattern, owners))
	}
	return b.String()
}

// GenerateFromFile reads a CODEOWNERS file and generates the document.
func GenerateFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", svcerrors.Wrap(svcerrors.UsageError, "cannot read CODEOWNERS at "+path, err)
	}
	return Generate(string(data)), nil
}
