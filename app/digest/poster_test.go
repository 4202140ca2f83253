package digest

import (
	"context"
	"errors"
	"testing"
)

type fakePublishClient struct {
	locked     bool
	lockErr    error
	publishErr error

	calls []string
}

func (f *fakePublishClient) IsLocked(context.Context, string) (bool, error) {
	f.calls = append(f.calls, "is_locked")
	return f.locked, nil
}

func (f *fakePublishClient) LockIssue(context.Context, string) error {
	f.calls = append(f.calls, "lock")
	return f.lockErr
}

func (f *fakePublishClient) UnlockIssue(context.Context, string) error {
	f.calls = append(f.calls, "unlock")
	return nil
}

func (f *fakePublishClient) Publish(context.Context, string, string, string) error {
	f.calls = append(f.calls, "publish")
	return f.publishErr
}

func callsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPoster_UnlockedIssueLeftAlone(t *testing.T) {
	client := &fakePublishClient{locked: false}
	poster := NewPoster(client)

	if err := poster.Post(context.Background(), "issue", "body", "comment"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	expected := []string{"is_locked", "publish"}
	if !callsEqual(client.calls, expected) {
		t.Errorf("Expected calls %v, got %v", expected, client.calls)
	}
}

func TestPoster_LockedIssueRestored(t *testing.T) {
	client := &fakePublishClient{locked: true}
	poster := NewPoster(client)

	if err := poster.Post(context.Background(), "issue", "body", "comment"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	expected := []string{"is_locked", "unlock", "publish", "lock"}
	if !callsEqual(client.calls, expected) {
		t.Errorf("Expected calls %v, got %v", expected, client.calls)
	}
}

func TestPoster_RelocksAfterPublishFailure(t *testing.T) {
	publishErr := errors.New("publish blew up")
	client := &fakePublishClient{locked: true, publishErr: publishErr}
	poster := NewPoster(client)

	err := poster.Post(context.Background(), "issue", "body", "comment")
	if !errors.Is(err, publishErr) {
		t.Errorf("Expected the publish error, got %v", err)
	}

	expected := []string{"is_locked", "unlock", "publish", "lock"}
	if !callsEqual(client.calls, expected) {
		t.Errorf("Lock must be restored on the failure path, got %v", client.calls)
	}
}

func TestPoster_RelockFailureDoesNotMaskPublishFailure(t *testing.T) {
	publishErr := errors.New("publish blew up")
	client := &fakePublishClient{locked: true, publishErr: publishErr, lockErr: errors.New("relock failed")}
	poster := NewPoster(client)

	err := poster.Post(context.Background(), "issue", "body", "comment")
	if !errors.Is(err, publishErr) {
		t.Errorf("Relock failure must not mask the publish failure, got %v", err)
	}
}

func TestPoster_RelockFailureSurfacedOnSuccess(t *testing.T) {
	lockErr := errors.New("relock failed")
	client := &fakePublishClient{locked: true, lockErr: lockErr}
	poster := NewPoster(client)

	err := poster.Post(context.Background(), "issue", "body", "comment")
	if !errors.Is(err, lockErr) {
		t.Errorf("Expected the relock failure to surface, got %v", err)
	}
}
