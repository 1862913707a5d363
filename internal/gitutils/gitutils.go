// Package gitutils shells out to git for the few facts the CLI needs:
// the repository root, changed files for a rev range, and tracked files.
package gitutils

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	svcerrors "serviceowners/internal/errors"
)

func runGit(ctx context.Context, repoRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if repoRoot != "" {
		cmd.Dir = repoRoot
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return "", svcerrors.Wrap(svcerrors.GitError, "git not found on PATH", err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", svcerrors.Wrap(svcerrors.GitError,
			"git "+strings.Join(args, " ")+" failed: "+msg, err)
	}

	return stdout.String(), nil
}

// FindRepoRoot returns the toplevel directory of the repository containing
// cwd (empty cwd means the current directory).
func FindRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := runGit(ctx, cwd, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", svcerrors.New(svcerrors.GitError,
			"not a git repository (or any of the parent directories)")
	}
	return root, nil
}

// DiffNameOnly returns the paths changed in the given rev range, e.g.
// "origin/main...HEAD". Renames and deletions are included; callers decide
// how to treat paths that no longer exist.
func DiffNameOnly(ctx context.Context, repoRoot, revRange string) ([]string, error) {
	out, err := runGit(ctx, repoRoot, "diff", "--name-only", revRange)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// LsFiles returns every git-tracked file in the repository.
func LsFiles(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := runGit(ctx, repoRoot, "ls-files", "-z")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			files = append(files, p)
		}
	}
	return files, nil
}
