package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serviceowners/internal/action"
	"serviceowners/internal/gitutils"
	"serviceowners/internal/lint"
	"serviceowners/internal/paths"
)

var (
	lintStrict        bool
	lintCheckMatches  bool
	lintCheckOverlaps bool
	lintFormat        string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check SERVICEOWNERS and services.yaml for mistakes",
	Long: `Checks the rule document and service catalog for duplicate patterns,
references to unknown services, and services without contact info.

--check-matches and --check-overlaps additionally scan the git-tracked
file list for dead patterns and cross-service overlaps; they require a
git checkout.`,
	Run: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false,
		"Treat warnings as errors")
	lintCmd.Flags().BoolVar(&lintCheckMatches, "check-matches", false,
		"Flag patterns that match no git-tracked file")
	lintCmd.Flags().BoolVar(&lintCheckOverlaps, "check-overlaps", false,
		"Report files matched by rules of different services")
	lintCmd.Flags().StringVar(&lintFormat, "format", "human",
		"Output format: json or human")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	ws := mustLoadWorkspace(ctx)

	opts := lint.Options{
		Strict:        lintStrict,
		CheckMatches:  lintCheckMatches,
		CheckOverlaps: lintCheckOverlaps,
	}
	if lintCheckMatches || lintCheckOverlaps {
		tracked, err := gitutils.LsFiles(ctx, ws.repoRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.TrackedFiles = paths.NormalizePaths(tracked, ws.repoRoot)
	}

	result := lint.Run(ws.rules, ws.catalog, opts)

	resp := &LintResponse{Issues: result.Issues}
	if resp.Issues == nil {
		resp.Issues = []lint.Issue{}
	}
	for _, issue := range result.Issues {
		if issue.Severity == lint.SeverityError {
			resp.Errors++
		} else {
			resp.Warns++
		}
	}

	out, err := FormatResponse(resp, OutputFormat(lintFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)

	if result.HasErrors() || (lintStrict && result.HasWarnings()) {
		os.Exit(action.ExitLint)
	}
}
