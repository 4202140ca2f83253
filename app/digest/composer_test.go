package digest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fholst/issue-digest/app/github"
)

func TestComposer_NothingToPublish(t *testing.T) {
	composer := NewComposer(testWindow(), 0)

	if d := composer.Compose(nil); d != nil {
		t.Errorf("No issues should compose to nil, got %+v", d)
	}

	stale := listingNode(1, emptyCommentPage())
	stale.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	noop := NewIssue(stale, testWindow())

	if d := composer.Compose([]*Issue{noop}); d != nil {
		t.Errorf("Only no-op issues should compose to nil, got %+v", d)
	}
}

func TestComposer_ExcludesNoOpIssuesFromCounters(t *testing.T) {
	w := testWindow()
	active := NewIssue(listingNode(1, github.CommentPage{
		Nodes: []*github.CommentNode{inWindowComment("a comment")},
	}), w)

	stale := listingNode(2, emptyCommentPage())
	stale.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	noop := NewIssue(stale, w)

	d := NewComposer(w, 0).Compose([]*Issue{active, noop})
	if d == nil {
		t.Fatal("Expected a digest")
	}

	if d.IssuesChanged != 1 {
		t.Errorf("Expected 1 changed issue, got %d", d.IssuesChanged)
	}
	if d.TotalChanges != 2 {
		t.Errorf("Expected issue change + comment = 2, got %d", d.TotalChanges)
	}
	if strings.Contains(d.Markdown, "[#2]") {
		t.Error("No-op issue should not appear in the rendered digest")
	}
	if !strings.Contains(d.Markdown, "contains 2 changes across 1 issues") {
		t.Errorf("Header counters wrong:\n%s", d.Markdown)
	}
}

func TestComposer_RendersWithinCeiling(t *testing.T) {
	w := testWindow()
	var issues []*Issue
	for i := 1; i <= 3; i++ {
		node := listingNode(i, emptyCommentPage())
		node.Body = strings.Repeat("long body text ", 200)
		issues = append(issues, NewIssue(node, w))
	}

	maxPostSize := 2000
	d := NewComposer(w, maxPostSize).Compose(issues)
	if d == nil {
		t.Fatal("Expected a digest")
	}
	if len(d.Markdown) > maxPostSize {
		t.Errorf("Digest exceeds ceiling: %d > %d", len(d.Markdown), maxPostSize)
	}
	if !strings.HasPrefix(d.Markdown, "<details>") {
		t.Error("Digest should be wrapped in the header template")
	}
}

func TestComposer_DegradesToReferenceLinks(t *testing.T) {
	w := testWindow()
	var issues []*Issue
	for i := 1; i <= 4; i++ {
		node := listingNode(i, emptyCommentPage())
		node.URL = fmt.Sprintf("https://example.com/issues/%d", i)
		node.Title = strings.Repeat("very long title ", 30)
		issues = append(issues, NewIssue(node, w))
	}

	// The chrome alone cannot fit: later issues degrade to reference
	// links in the omitted-issues footer.
	d := NewComposer(w, 1200).Compose(issues)
	if d == nil {
		t.Fatal("Expected a digest")
	}
	if !strings.Contains(d.Markdown, "Issues omitted:") {
		t.Errorf("Expected an omitted-issues footer:\n%s", d.Markdown)
	}
	if !strings.Contains(d.Markdown, "[#4](https://example.com/issues/4)") {
		t.Error("Omitted issues should degrade to reference links")
	}
}

func TestComposer_HeaderCarriesWindowBounds(t *testing.T) {
	w := testWindow()
	issue := NewIssue(listingNode(1, emptyCommentPage()), w)

	d := NewComposer(w, 0).Compose([]*Issue{issue})
	if d == nil {
		t.Fatal("Expected a digest")
	}

	if !strings.Contains(d.Markdown, formatLocal(w.End)) {
		t.Error("Header should carry the window end")
	}
	if !strings.Contains(d.Markdown, "since "+formatLocal(w.Start)) {
		t.Error("Header should carry the window start")
	}
}
