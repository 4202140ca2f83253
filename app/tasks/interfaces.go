package tasks

import (
	"context"
	"time"

	"github.com/fholst/issue-digest/app/github"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(watchConfig, client, settingsRepo, runRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewDigestTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// GitHubClient covers every API operation a digest run performs, from
// the bootstrap lookups through the batched pagination queries to the
// final publish mutations.
type GitHubClient interface {
	RunQueries(ctx context.Context, fragments []github.Fragment) (github.Result, error)
	FindRepositoryID(ctx context.Context, owner, name string) (string, error)
	LastCommentDate(ctx context.Context, issueID string) (*time.Time, error)
	CreateIssue(ctx context.Context, repoID, title, body string) (string, int, error)
	IsLocked(ctx context.Context, issueID string) (bool, error)
	LockIssue(ctx context.Context, issueID string) error
	UnlockIssue(ctx context.Context, issueID string) error
	Publish(ctx context.Context, issueID, issueBody, commentBody string) error
}

var _ GitHubClient = (*github.Client)(nil)
