package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"serviceowners/internal/config"
	"serviceowners/internal/gitutils"
	"serviceowners/internal/logging"
	"serviceowners/internal/ownership"
	"serviceowners/internal/services"
	"serviceowners/internal/version"
)

var (
	// serviceownersFileFlag overrides the rule document path
	serviceownersFileFlag string
	// servicesFileFlag overrides the service catalog path
	servicesFileFlag string
	// repoRootFlag overrides git-based repo root detection
	repoRootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "serviceowners",
	Short: "ServiceOwners - repo-native service ownership mapping",
	Long: `ServiceOwners resolves repository file paths to owning services using an
ordered SERVICEOWNERS rule document, and aggregates that resolution over
changed files to report which services a diff impacts.

Precedence is positional: the last rule in the document that matches a
path wins, overriding any earlier, broader rule.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("serviceowners version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&serviceownersFileFlag, "serviceowners-file", "",
		"Path to SERVICEOWNERS, relative to repo root (default: from config)")
	rootCmd.PersistentFlags().StringVar(&servicesFileFlag, "services-file", "",
		"Path to services.yaml, relative to repo root (default: from config)")
	rootCmd.PersistentFlags().StringVar(&repoRootFlag, "repo-root", "",
		"Repository root (default: auto-detect with git)")
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

// resolveRepoRoot picks the repository root: the flag, then git discovery,
// then the working directory.
func resolveRepoRoot(ctx context.Context) string {
	if repoRootFlag != "" {
		abs, err := filepath.Abs(repoRootFlag)
		if err == nil {
			return abs
		}
		return repoRootFlag
	}
	if root, err := gitutils.FindRepoRoot(ctx, ""); err == nil {
		return root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// workspace is everything a command needs to answer ownership queries.
type workspace struct {
	repoRoot string
	cfg      *config.Config
	rules    *ownership.RuleSet
	catalog  services.Catalog
	logger   *logging.Logger
}

// mustLoadWorkspace loads config, rules, and catalog, exiting with the
// construction error on any malformed input. There is no degraded mode:
// a broken SERVICEOWNERS file stops every command.
func mustLoadWorkspace(ctx context.Context) *workspace {
	repoRoot := resolveRepoRoot(ctx)

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	soFile := cfg.ServiceownersFile
	if serviceownersFileFlag != "" {
		soFile = serviceownersFileFlag
	}
	svcFile := cfg.ServicesFile
	if servicesFileFlag != "" {
		svcFile = servicesFileFlag
	}

	rules, err := ownership.Load(joinRoot(repoRoot, soFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog, err := services.Load(joinRoot(repoRoot, svcFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return &workspace{
		repoRoot: repoRoot,
		cfg:      cfg,
		rules:    rules,
		catalog:  catalog,
		logger:   newLogger(cfg),
	}
}

func joinRoot(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}
