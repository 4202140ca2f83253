package github

import (
	"context"
	"fmt"
	"time"
)

// Single-shot convenience operations used by the digest bootstrap and the
// publish path. Each one is a one-fragment round trip.

// FindRepositoryID resolves owner/name to the repository node id.
func (c *Client) FindRepositoryID(ctx context.Context, owner, name string) (string, error) {
	res, err := c.RunQueries(ctx, []Fragment{findRepositoryFragment("find_repo_id", owner, name)})
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := res.Decode("find_repo_id", &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", &ProtocolError{Messages: []string{fmt.Sprintf("repository %s/%s not found", owner, name)}}
	}
	return out.ID, nil
}

// LastCommentDate returns the creation time of the newest comment on the
// issue, or nil when the issue has no comments yet.
func (c *Client) LastCommentDate(ctx context.Context, issueID string) (*time.Time, error) {
	res, err := c.RunQueries(ctx, []Fragment{lastCommentDateFragment("read_last_comment", issueID)})
	if err != nil {
		return nil, err
	}

	var out struct {
		Comments struct {
			Nodes []struct {
				CreatedAt time.Time `json:"createdAt"`
			} `json:"nodes"`
		} `json:"comments"`
	}
	if err := res.Decode("read_last_comment", &out); err != nil {
		return nil, err
	}
	if len(out.Comments.Nodes) == 0 {
		return nil, nil
	}
	t := out.Comments.Nodes[len(out.Comments.Nodes)-1].CreatedAt
	return &t, nil
}

// CreateIssue creates the digest issue and returns its node id and number.
func (c *Client) CreateIssue(ctx context.Context, repoID, title, body string) (string, int, error) {
	res, err := c.RunMutations(ctx, []Fragment{createIssueFragment("create_issue", repoID, title, body)})
	if err != nil {
		return "", 0, err
	}

	var out struct {
		Issue struct {
			ID     string `json:"id"`
			Number int    `json:"number"`
		} `json:"issue"`
	}
	if err := res.Decode("create_issue", &out); err != nil {
		return "", 0, err
	}
	return out.Issue.ID, out.Issue.Number, nil
}

// IsLocked reads the current lock state of the issue.
func (c *Client) IsLocked(ctx context.Context, issueID string) (bool, error) {
	res, err := c.RunQueries(ctx, []Fragment{lockStateFragment("read_issue_lock", issueID)})
	if err != nil {
		return false, err
	}

	var out struct {
		Locked bool `json:"locked"`
	}
	if err := res.Decode("read_issue_lock", &out); err != nil {
		return false, err
	}
	return out.Locked, nil
}

func (c *Client) LockIssue(ctx context.Context, issueID string) error {
	_, err := c.RunMutations(ctx, []Fragment{lockIssueFragment("lock_issue", issueID)})
	return err
}

func (c *Client) UnlockIssue(ctx context.Context, issueID string) error {
	_, err := c.RunMutations(ctx, []Fragment{unlockIssueFragment("unlock_issue", issueID)})
	return err
}

// Publish updates the digest issue body and appends the rendered digest
// comment, both in a single mutation round trip.
func (c *Client) Publish(ctx context.Context, issueID, issueBody, commentBody string) error {
	_, err := c.RunMutations(ctx, []Fragment{
		UpdateIssueFragment("update_issue", issueID, issueBody),
		AddCommentFragment("new_digest", issueID, commentBody),
	})
	return err
}
