package digest

import (
	"context"

	"github.com/fholst/issue-digest/app/github"
)

var (
	_ BatchRunner   = (*github.Client)(nil)
	_ PublishClient = (*github.Client)(nil)
)

// BatchRunner submits one batch of partial queries as a single round trip.
type BatchRunner interface {
	RunQueries(ctx context.Context, fragments []github.Fragment) (github.Result, error)
}

// PublishClient is the mutation surface the poster needs around the
// digest issue.
type PublishClient interface {
	IsLocked(ctx context.Context, issueID string) (bool, error)
	LockIssue(ctx context.Context, issueID string) error
	UnlockIssue(ctx context.Context, issueID string) error
	Publish(ctx context.Context, issueID, issueBody, commentBody string) error
}
