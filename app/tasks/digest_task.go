package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fholst/issue-digest/app/config"
	"github.com/fholst/issue-digest/app/database"
	"github.com/fholst/issue-digest/app/digest"
)

const digestIssueTitleTemplate = "[%s] Issues Digest"

// DigestTask runs one complete digest cycle: bootstrap the target issue
// if needed, derive the reporting window, aggregate the changed issues,
// compose the digest and publish it. Each cycle is recorded in the run
// history.
type DigestTask struct {
	Task
	watch        *config.WatchConfig
	client       GitHubClient
	settingsRepo database.SettingsRepository
	runRepo      database.RunRepository
}

func NewDigestTask(watch *config.WatchConfig, client GitHubClient,
	settingsRepo database.SettingsRepository, runRepo database.RunRepository) *DigestTask {
	return &DigestTask{
		Task:         NewTask(TaskTypeDigest, watch.Repository),
		watch:        watch,
		client:       client,
		settingsRepo: settingsRepo,
		runRepo:      runRepo,
	}
}

func (t *DigestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	settings, err := t.settingsRepo.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.TargetIssueID == "" {
		settings, err = t.bootstrap(ctx, settings)
		if err != nil {
			return fmt.Errorf("failed to bootstrap digest issue: %w", err)
		}
	}

	window, err := t.resolveWindow(ctx, settings.TargetIssueID)
	if err != nil {
		return fmt.Errorf("failed to resolve reporting window: %w", err)
	}

	run := database.Run{
		ID:          t.ID,
		StartedAt:   time.Now().UTC(),
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}
	if err := t.runRepo.InsertRun(run); err != nil {
		slog.Warn("Failed to record run start", "run_id", run.ID, "error", err)
	}

	runErr := t.run(ctx, settings, window, &run)

	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := t.runRepo.FinishRun(run); err != nil {
		slog.Warn("Failed to record run result", "run_id", run.ID, "error", err)
	}

	return runErr
}

func (t *DigestTask) run(ctx context.Context, settings *database.Settings, window digest.TimeWindow, run *database.Run) error {
	aggregator := digest.NewAggregator(t.client, t.watch.Repository, window,
		settings.IgnoredIssues, settings.TargetIssueID)
	issues, err := aggregator.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate issues: %w", err)
	}

	composer := digest.NewComposer(window, t.watch.MaxPostSize)
	d := composer.Compose(issues)
	if d == nil {
		slog.Info("No changes within window, nothing to publish", "repository", t.watch.Repository,
			"window_start", window.Start, "window_end", window.End)
		return nil
	}

	poster := digest.NewPoster(t.client)
	if err := poster.Post(ctx, settings.TargetIssueID, digest.SubscribeText, d.Markdown); err != nil {
		return fmt.Errorf("failed to publish digest: %w", err)
	}

	run.TotalChanges = d.TotalChanges
	run.IssuesChanged = d.IssuesChanged
	run.Posted = true

	slog.Info("Digest published", "repository", t.watch.Repository,
		"total_changes", d.TotalChanges, "issues_changed", d.IssuesChanged,
		"size", len(d.Markdown))
	return nil
}

// bootstrap creates the digest issue in the home repository and persists
// its id. When the digest lives in the tracked repository itself, the
// new issue number joins the ignore list so the digest never reports on
// its own thread.
func (t *DigestTask) bootstrap(ctx context.Context, settings *database.Settings) (*database.Settings, error) {
	owner, name := t.watch.HomeOwnerName()
	repoID, err := t.client.FindRepositoryID(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository %s/%s: %w", owner, name, err)
	}

	title := fmt.Sprintf(digestIssueTitleTemplate, t.watch.Repository)
	issueID, issueNumber, err := t.client.CreateIssue(ctx, repoID, title, digest.SubscribeText)
	if err != nil {
		return nil, err
	}

	if err := t.settingsRepo.SetTargetIssueID(issueID); err != nil {
		return nil, fmt.Errorf("failed to persist digest issue id: %w", err)
	}
	settings.TargetIssueID = issueID

	if t.watch.IsSelfDigest() {
		if err := t.settingsRepo.AddIgnoredIssue(issueNumber); err != nil {
			return nil, fmt.Errorf("failed to ignore digest issue: %w", err)
		}
		settings.IgnoredIssues = append(settings.IgnoredIssues, issueNumber)
	}

	slog.Info("Digest issue created", "repository", t.watch.Home(), "number", issueNumber)
	return settings, nil
}

// resolveWindow derives the reporting window from the last digest
// comment. A fresh digest issue has no comments, so the window falls
// back a fixed number of days.
func (t *DigestTask) resolveWindow(ctx context.Context, targetIssueID string) (digest.TimeWindow, error) {
	now := time.Now().UTC()

	since, err := t.client.LastCommentDate(ctx, targetIssueID)
	if err != nil {
		return digest.TimeWindow{}, err
	}
	if since == nil {
		start := now.AddDate(0, 0, -t.watch.WindowFallbackDays)
		return digest.TimeWindow{Start: start, End: now}, nil
	}

	return digest.TimeWindow{Start: since.UTC(), End: now}, nil
}
