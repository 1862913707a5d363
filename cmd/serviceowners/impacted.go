package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serviceowners/internal/action"
	"serviceowners/internal/gitutils"
	"serviceowners/internal/impact"
	"serviceowners/internal/paths"
)

var (
	impactedDiff           string
	impactedStdin          bool
	impactedFormat         string
	impactedShowFiles      bool
	impactedMaxFiles       int
	impactedFailOnUnmapped bool
)

var impactedCmd = &cobra.Command{
	Use:   "impacted",
	Short: "Report which services a set of changed files impacts",
	Long: `Resolves every changed file against the SERVICEOWNERS rules and groups
the results by owning service.

Changed files come from 'git diff --name-only <range>' by default, or
from stdin (one path per line) with --stdin.`,
	Run: runImpacted,
}

func init() {
	impactedCmd.Flags().StringVar(&impactedDiff, "diff", "HEAD~1...HEAD",
		"Git rev range to diff")
	impactedCmd.Flags().BoolVar(&impactedStdin, "stdin", false,
		"Read changed paths from stdin instead of git diff")
	impactedCmd.Flags().StringVar(&impactedFormat, "format", "human",
		"Output format: json or human")
	impactedCmd.Flags().BoolVar(&impactedShowFiles, "show-files", false,
		"List the changed files under each service")
	impactedCmd.Flags().IntVar(&impactedMaxFiles, "max-files", 0,
		"Cap on files listed per service (default: from config)")
	impactedCmd.Flags().BoolVar(&impactedFailOnUnmapped, "fail-on-unmapped", false,
		"Exit non-zero when any changed file has no owner")
	rootCmd.AddCommand(impactedCmd)
}

func runImpacted(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	ws := mustLoadWorkspace(ctx)

	var changed []string
	diffLabel := impactedDiff
	if impactedStdin {
		diffLabel = "(stdin)"
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			changed = append(changed, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		var err error
		changed, err = gitutils.DiffNameOnly(ctx, ws.repoRoot, impactedDiff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	changed = paths.NormalizePaths(changed, ws.repoRoot)

	report := impact.Compute(ws.rules, changed)

	maxFiles := impactedMaxFiles
	if maxFiles <= 0 {
		maxFiles = ws.cfg.MaxFilesPerService
	}

	resp := &ImpactedResponse{
		Diff:          diffLabel,
		Services:      []ImpactedService{},
		UnmappedFiles: report.UnmappedFiles,
	}
	for _, name := range report.ImpactedServices() {
		files := report.ServicesToFiles[name]
		entry := ImpactedService{Name: name, FileCount: len(files)}
		if meta, ok := ws.catalog[name]; ok {
			entry.Owners = meta.OwnersLine()
		}
		if impactedShowFiles {
			shown := files
			if len(shown) > maxFiles {
				shown = shown[:maxFiles]
				entry.Truncated = len(files) - maxFiles
			}
			entry.Files = shown
		}
		resp.Services = append(resp.Services, entry)
	}

	out, err := FormatResponse(resp, OutputFormat(impactedFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)

	if impactedFailOnUnmapped && len(report.UnmappedFiles) > 0 {
		os.Exit(action.ExitUnmapped)
	}
}
