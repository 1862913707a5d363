package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serviceowners/internal/paths"
)

var (
	whoOwnsExplain bool
	whoOwnsFormat  string
)

var whoOwnsCmd = &cobra.Command{
	Use:   "who-owns <path>",
	Short: "Resolve which service owns a repository path",
	Long: `Resolves a single path against the SERVICEOWNERS rules and prints the
owning service, plus catalog metadata when the service is known.

With --explain, every matching rule is listed in declaration order; the
last one is the winner.`,
	Args: cobra.ExactArgs(1),
	Run:  runWhoOwns,
}

func init() {
	whoOwnsCmd.Flags().BoolVar(&whoOwnsExplain, "explain", false,
		"List every matching rule, not just the winner")
	whoOwnsCmd.Flags().StringVar(&whoOwnsFormat, "format", "human",
		"Output format: json or human")
	rootCmd.AddCommand(whoOwnsCmd)
}

func runWhoOwns(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	ws := mustLoadWorkspace(ctx)

	path := paths.NormalizeRepoPath(args[0], ws.repoRoot)

	resp := &WhoOwnsResponse{Path: path}
	if service, ok := ws.rules.Resolve(path); ok {
		resp.Service = service
		resp.Mapped = true
		if meta, known := ws.catalog[service]; known {
			resp.Metadata = meta
		}
	}
	if whoOwnsExplain {
		resp.Matches = ws.rules.Explain(path)
	}

	out, err := FormatResponse(resp, OutputFormat(whoOwnsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
