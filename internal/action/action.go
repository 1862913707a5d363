// Package action runs the GitHub Actions entry point: it derives the diff
// range from the workflow event, computes impact and lint, writes the step
// summary and step outputs, and upserts the PR comment.
package action

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"serviceowners/internal/config"
	svcerrors "serviceowners/internal/errors"
	"serviceowners/internal/githubapi"
	"serviceowners/internal/gitutils"
	"serviceowners/internal/impact"
	"serviceowners/internal/lint"
	"serviceowners/internal/logging"
	"serviceowners/internal/markdown"
	"serviceowners/internal/ownership"
	"serviceowners/internal/paths"
	"serviceowners/internal/services"
)

// Inputs are the action's declared inputs.
type Inputs struct {
	// Diff overrides the rev range derived from the event
	Diff string

	// Comment controls whether the PR comment is upserted
	Comment bool

	// FailOnUnmapped makes unmapped files a distinct failure (exit 3)
	FailOnUnmapped bool

	// StrictLint treats lint warnings as errors
	StrictLint bool
}

// Exit codes for the action. Lint failures and unmapped files are kept
// distinct so workflows can react to them separately.
const (
	ExitOK       = 0
	ExitLint     = 2
	ExitUnmapped = 3
)

// Runner executes the action. Getenv is injectable for tests; everything
// else is ordinary collaborators.
type Runner struct {
	Logger *logging.Logger
	Getenv func(string) string
}

// NewRunner creates a Runner bound to the process environment.
func NewRunner(logger *logging.Logger) *Runner {
	return &Runner{Logger: logger, Getenv: os.Getenv}
}

// event is the slice of the workflow payload this tool cares about.
type event struct {
	Number      int    `json:"number"`
	Before      string `json:"before"`
	After       string `json:"after"`
	PullRequest struct {
		Base struct {
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// loadEvent reads the event payload the workflow runner wrote to disk.
// Absent or unreadable payloads are not fatal; the diff falls back.
func (r *Runner) loadEvent() (string, *event) {
	name := r.Getenv("GITHUB_EVENT_NAME")
	path := r.Getenv("GITHUB_EVENT_PATH")
	if name == "" || path == "" {
		return name, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return name, nil
	}
	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		return name, nil
	}
	return name, &ev
}

// determineDiff picks the rev range: explicit input, then the event's
// PR base...head or push before...after, then the last commit.
func determineDiff(inputs Inputs, eventName string, ev *event) string {
	if inputs.Diff != "" {
		return inputs.Diff
	}
	if ev != nil {
		switch eventName {
		case "pull_request", "pull_request_target":
			if ev.PullRequest.Base.SHA != "" && ev.PullRequest.Head.SHA != "" {
				return ev.PullRequest.Base.SHA + "..." + ev.PullRequest.Head.SHA
			}
		case "push":
			if ev.Before != "" && ev.After != "" {
				return ev.Before + "..." + ev.After
			}
		}
	}
	return "HEAD~1...HEAD"
}

func prNumber(eventName string, ev *event) int {
	if ev == nil {
		return 0
	}
	if eventName == "pull_request" || eventName == "pull_request_target" {
		return ev.Number
	}
	return 0
}

func (r *Runner) repoSlug() (string, string, error) {
	slug := r.Getenv("GITHUB_REPOSITORY")
	owner, name, found := strings.Cut(slug, "/")
	if !found || owner == "" || name == "" {
		return "", "", svcerrors.New(svcerrors.UsageError,
			"GITHUB_REPOSITORY is not set (expected 'owner/repo')")
	}
	return owner, name, nil
}

// writeStepSummary appends to the job summary file. Failures never fail
// the action.
func (r *Runner) writeStepSummary(md string) {
	path := r.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		r.Logger.Warn("Cannot write step summary", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = f.Close() }()
	_, _ = f.WriteString(md)
}

// writeOutputs appends impacted_services and unmapped_files (as JSON) to
// the step output file for downstream workflow steps.
func (r *Runner) writeOutputs(impacted, unmapped []string) {
	path := r.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		r.Logger.Warn("Cannot write step outputs", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = f.Close() }()

	impactedJSON, _ := json.Marshal(impacted)
	unmappedJSON, _ := json.Marshal(unmapped)
	fmt.Fprintf(f, "impacted_services=%s\n", impactedJSON)
	fmt.Fprintf(f, "unmapped_files=%s\n", unmappedJSON)
}

// Run executes the action and returns its exit code.
func (r *Runner) Run(ctx context.Context, inputs Inputs) (int, error) {
	logger := r.Logger.With(map[string]interface{}{"runId": uuid.NewString()})

	repoRoot, err := gitutils.FindRepoRoot(ctx, "")
	if err != nil {
		return 1, err
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return 1, err
	}

	rules, err := ownership.Load(joinRoot(repoRoot, cfg.ServiceownersFile))
	if err != nil {
		return 1, err
	}
	catalog, err := services.Load(joinRoot(repoRoot, cfg.ServicesFile))
	if err != nil {
		return 1, err
	}

	eventName, ev := r.loadEvent()
	diff := determineDiff(inputs, eventName, ev)
	logger.Info("Computing impact", map[string]interface{}{
		"diff":  diff,
		"event": eventName,
		"rules": rules.Len(),
	})

	changed, err := gitutils.DiffNameOnly(ctx, repoRoot, diff)
	if err != nil {
		return 1, svcerrors.Wrap(svcerrors.UsageError,
			"unable to compute git diff '"+diff+"' (in GitHub Actions, ensure actions/checkout uses fetch-depth: 0)", err)
	}
	changed = paths.NormalizePaths(changed, repoRoot)

	report := impact.Compute(rules, changed)
	lintResult := lint.Run(rules, catalog, lint.Options{})

	var summary strings.Builder
	fmt.Fprintf(&summary, "_Diff_: `%s`\n\n", diff)
	summary.WriteString(markdown.RenderImpact(report, catalog, markdown.ImpactOptions{
		IncludeFiles:       true,
		MaxFilesPerService: 100,
		IncludeUnmapped:    true,
		ShowMetadata:       true,
	}))
	summary.WriteString("\n")
	summary.WriteString(markdown.RenderLint(lintResult, "Lint"))
	r.writeStepSummary(summary.String())

	r.writeOutputs(report.ImpactedServices(), report.UnmappedFiles)

	token := r.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = r.Getenv("GH_TOKEN")
	}
	pr := prNumber(eventName, ev)

	if inputs.Comment && token != "" && pr > 0 {
		owner, repo, err := r.repoSlug()
		if err != nil {
			return 1, err
		}
		body := markdown.RenderComment(report, catalog, cfg.CommentMarker, cfg.CommentTitle)
		client := githubapi.NewClient(token)
		if err := client.UpsertComment(ctx, owner, repo, pr, body, markdown.CommentMarker(cfg.CommentMarker)); err != nil {
			return 1, err
		}
		logger.Info("PR comment upserted", map[string]interface{}{"pr": pr})
	}

	if lintResult.HasErrors() {
		return ExitLint, nil
	}
	if inputs.StrictLint && lintResult.HasWarnings() {
		return ExitLint, nil
	}
	if inputs.FailOnUnmapped && len(report.UnmappedFiles) > 0 {
		return ExitUnmapped, nil
	}
	return ExitOK, nil
}

func joinRoot(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}
