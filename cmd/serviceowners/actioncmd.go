package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serviceowners/internal/action"
	"serviceowners/internal/logging"
)

var (
	actionDiff           string
	actionComment        bool
	actionFailOnUnmapped bool
	actionStrictLint     bool
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Run as a GitHub Actions step",
	Long: `Runs the full impact pipeline inside a GitHub Actions workflow: derives
the diff range from the workflow event, writes the step summary and
outputs, and upserts the impact comment on the pull request.

Reads GITHUB_EVENT_NAME, GITHUB_EVENT_PATH, GITHUB_REPOSITORY,
GITHUB_STEP_SUMMARY, GITHUB_OUTPUT, and GITHUB_TOKEN (or GH_TOKEN)
from the environment.`,
	Run: runAction,
}

func init() {
	actionCmd.Flags().StringVar(&actionDiff, "diff", "",
		"Override the rev range derived from the workflow event")
	actionCmd.Flags().BoolVar(&actionComment, "comment", true,
		"Upsert the impact comment on the pull request")
	actionCmd.Flags().BoolVar(&actionFailOnUnmapped, "fail-on-unmapped", false,
		"Exit non-zero when any changed file has no owner")
	actionCmd.Flags().BoolVar(&actionStrictLint, "strict-lint", false,
		"Treat lint warnings as errors")
	rootCmd.AddCommand(actionCmd)
}

func runAction(cmd *cobra.Command, args []string) {
	// CI logs are machine-collected; always emit json here.
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.InfoLevel,
	})

	runner := action.NewRunner(logger)
	code, err := runner.Run(cmd.Context(), action.Inputs{
		Diff:           actionDiff,
		Comment:        actionComment,
		FailOnUnmapped: actionFailOnUnmapped,
		StrictLint:     actionStrictLint,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if code != action.ExitOK {
		os.Exit(code)
	}
}
