// Package paths normalizes candidate file paths before they are fed to
// the ownership engine. The engine only ever sees /-separated paths
// relative to the repository root.
package paths

import (
	"path/filepath"
	"strings"
)

// NormalizeRepoPath normalizes a file path for matching:
//   - converts backslashes to forward slashes
//   - trims surrounding whitespace and quotes (common when copying from tooling)
//   - if absolute and repoRoot is non-empty, makes it relative to repoRoot
//   - strips leading "./" (repeatable) and a single leading "/"
func NormalizeRepoPath(path string, repoRoot string) string {
	p := strings.TrimSpace(strings.ReplaceAll(path, "\\", "/"))

	if len(p) >= 2 {
		if (p[0] == '"' && p[len(p)-1] == '"') || (p[0] == '\'' && p[len(p)-1] == '\'') {
			p = p[1 : len(p)-1]
		}
	}

	if repoRoot != "" && filepath.IsAbs(p) {
		if rel, err := filepath.Rel(repoRoot, p); err == nil {
			p = filepath.ToSlash(rel)
		}
	}

	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimPrefix(p, "/")

	return p
}

// NormalizePaths normalizes a batch of paths, dropping blank entries.
func NormalizePaths(in []string, repoRoot string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, NormalizeRepoPath(p, repoRoot))
	}
	return out
}
