package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fholst/issue-digest/app/github"
)

const listingAlias = "listing"

// Aggregator drives the two-level pagination of the issue listing and the
// per-issue comment threads to a fixpoint. Each round batches the next
// listing page (while the listing is incomplete) together with one
// comment continuation for every issue that still has pages, so the whole
// run costs max(listing pages, deepest comment thread) round trips rather
// than their sum.
type Aggregator struct {
	client     BatchRunner
	repo       string
	window     TimeWindow
	ignored    map[int]struct{}
	excludedID string

	cursor   string
	complete bool
}

// NewAggregator prepares one aggregation run over repo within window.
// Issues whose numbers appear in ignored, and the issue identified by
// excludedID (the digest issue itself), never enter the result.
func NewAggregator(client BatchRunner, repo string, window TimeWindow, ignored []int, excludedID string) *Aggregator {
	ignoredSet := make(map[int]struct{}, len(ignored))
	for _, n := range ignored {
		ignoredSet[n] = struct{}{}
	}
	return &Aggregator{
		client:     client,
		repo:       repo,
		window:     window,
		ignored:    ignoredSet,
		excludedID: excludedID,
	}
}

// Run executes the fixpoint loop and returns the collected issues sorted
// by number. The frontier is local to this call; a failed run leaves no
// state behind and is retried from scratch by the next invocation.
func (a *Aggregator) Run(ctx context.Context) ([]*Issue, error) {
	frontier := make(map[string]*Issue)

	for round := 1; ; round++ {
		var fragments []github.Fragment

		requestedListing := !a.complete
		if requestedListing {
			fragments = append(fragments, github.SearchIssuesFragment(listingAlias, a.repo, a.window.Start, a.cursor))
		}

		pending := pendingIssues(frontier)
		for _, issue := range pending {
			fragments = append(fragments, issue.CommentsFragment(commentAlias(issue)))
		}

		if len(fragments) == 0 {
			break
		}

		slog.Debug("Submitting aggregation batch", "repo", a.repo, "round", round, "listing", requestedListing, "continuations", len(pending))

		res, err := a.client.RunQueries(ctx, fragments)
		if err != nil {
			return nil, fmt.Errorf("aggregation round %d failed: %w", round, err)
		}

		if requestedListing {
			if err := a.readListingPage(res, frontier); err != nil {
				return nil, err
			}
		}
		for _, issue := range pending {
			var resource github.IssueResource
			if err := res.Decode(commentAlias(issue), &resource); err != nil {
				return nil, err
			}
			issue.ReadCommentPage(resource.Comments)
		}
	}

	issues := make([]*Issue, 0, len(frontier))
	for _, issue := range frontier {
		issues = append(issues, issue)
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Number < issues[j].Number })
	return issues, nil
}

func (a *Aggregator) readListingPage(res github.Result, frontier map[string]*Issue) error {
	var page github.SearchPage
	if err := res.Decode(listingAlias, &page); err != nil {
		return err
	}

	a.cursor = page.PageInfo.EndCursor
	a.complete = !page.PageInfo.HasNextPage

	for _, node := range page.Nodes {
		if node == nil {
			continue
		}
		if node.ID == a.excludedID {
			continue
		}
		if _, ok := a.ignored[node.Number]; ok {
			continue
		}
		if _, ok := frontier[node.ID]; ok {
			// the listing should never repeat an issue; keep the first
			continue
		}
		frontier[node.ID] = NewIssue(node, a.window)
	}
	return nil
}

// pendingIssues returns the issues that still have comment pages, in
// number order so batches are deterministic.
func pendingIssues(frontier map[string]*Issue) []*Issue {
	var pending []*Issue
	for _, issue := range frontier {
		if issue.HasMoreComments() {
			pending = append(pending, issue)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Number < pending[j].Number })
	return pending
}

func commentAlias(issue *Issue) string {
	return fmt.Sprintf("comments_%d", issue.Number)
}
