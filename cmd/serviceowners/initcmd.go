package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serviceowners/internal/bootstrap"
	"serviceowners/internal/config"
)

var (
	initCodeowners string
	initWrite      bool
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a starter SERVICEOWNERS from CODEOWNERS",
	Long: `Generates a SERVICEOWNERS document from an existing CODEOWNERS file,
inferring a service name for each rule from its pattern and owners.

The output goes to stdout unless --write is given. Inferred names are a
starting point; review them before relying on the mapping.`,
	Run: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initCodeowners, "codeowners", "",
		"Path to CODEOWNERS (default: auto-detect)")
	initCmd.Flags().BoolVar(&initWrite, "write", false,
		"Write the result to the configured SERVICEOWNERS path")
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite an existing SERVICEOWNERS file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	repoRoot := resolveRepoRoot(ctx)

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	source := initCodeowners
	if source == "" {
		source = bootstrap.FindCodeowners(repoRoot)
	}
	if source == "" {
		fmt.Fprintln(os.Stderr, "Error: no CODEOWNERS file found (use --codeowners to point at one)")
		os.Exit(1)
	}

	content, err := bootstrap.GenerateFromFile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !initWrite {
		fmt.Print(content)
		return
	}

	target := cfg.ServiceownersFile
	if serviceownersFileFlag != "" {
		target = serviceownersFileFlag
	}
	target = joinRoot(repoRoot, target)

	if _, err := os.Stat(target); err == nil && !initForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", target)
		os.Exit(1)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", target, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (from %s)\n", target, source)
}
