package digest

import (
	"context"
	"fmt"
	"log/slog"
)

// Poster publishes a digest to the target issue while preserving its lock
// state: a locked issue is unlocked for the write and relocked on every
// exit path. A relock failure is surfaced, but never allowed to mask a
// publish failure.
type Poster struct {
	client PublishClient
}

func NewPoster(client PublishClient) *Poster {
	return &Poster{client: client}
}

// Post updates the digest issue body and appends the rendered digest as a
// comment, both in one mutation round trip.
func (p *Poster) Post(ctx context.Context, issueID, issueBody, commentBody string) error {
	locked, err := p.client.IsLocked(ctx, issueID)
	if err != nil {
		return fmt.Errorf("failed to read lock state: %w", err)
	}

	if locked {
		if err := p.client.UnlockIssue(ctx, issueID); err != nil {
			return fmt.Errorf("failed to unlock digest issue: %w", err)
		}
	}

	publishErr := p.client.Publish(ctx, issueID, issueBody, commentBody)

	if locked {
		if lockErr := p.client.LockIssue(ctx, issueID); lockErr != nil {
			if publishErr != nil {
				slog.Error("Failed to restore lock after publish failure", "issue_id", issueID, "error", lockErr)
				return fmt.Errorf("failed to publish digest: %w", publishErr)
			}
			return fmt.Errorf("digest published but failed to restore lock: %w", lockErr)
		}
	}

	if publishErr != nil {
		return fmt.Errorf("failed to publish digest: %w", publishErr)
	}
	return nil
}
