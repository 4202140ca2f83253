package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fholst/issue-digest/app/github"
)

const (
	issueTitleTemplate = "# %s [#%d](%s)\n"
	issueTemplate      = "\n`@%s` %s this issue on %s\n%s\n\n\n"
)

// Issue is one tracked issue under aggregation: its own change metadata,
// its body, the comments already collected, and the pagination state of
// its comment thread. Created on first sighting in the listing; comment
// continuation pages are folded in as they arrive.
type Issue struct {
	ChangeMeta
	ID     string
	Number int
	URL    string
	Title  string
	Body   *Content

	Comments []*Comment

	window          TimeWindow
	commentsCursor  string
	hasMoreComments bool
}

// NewIssue builds an issue from a listing node and consumes the embedded
// first comment page.
func NewIssue(node *github.IssueNode, window TimeWindow) *Issue {
	issue := &Issue{
		ChangeMeta: newChangeMeta(node.Author, node.CreatedAt, node.Editor, node.LastEditedAt),
		ID:         node.ID,
		Number:     node.Number,
		URL:        node.URL,
		Title:      node.Title,
		Body:       NewContent(node.Body),
		window:     window,
	}
	issue.ReadCommentPage(node.Comments)
	return issue
}

// ReadCommentPage folds one comment page into the issue: pagination state
// is advanced, and only in-window, non-deleted comments are retained.
// Comments outside the window are dropped for good, never revisited.
func (i *Issue) ReadCommentPage(page github.CommentPage) {
	i.commentsCursor = page.PageInfo.EndCursor
	i.hasMoreComments = page.PageInfo.HasNextPage

	for _, node := range page.Nodes {
		if node == nil {
			continue
		}
		comment := &Comment{
			ChangeMeta: newChangeMeta(node.Author, node.CreatedAt, node.Editor, node.LastEditedAt),
			SourceLink: node.URL,
			window:     i.window,
		}
		if node.Body != "" {
			comment.Body = NewContent(node.Body)
		}
		if comment.WithinWindow(i.window) && !comment.IsDeleted() {
			i.Comments = append(i.Comments, comment)
		}
	}
}

// HasMoreComments reports whether the comment thread has pages left.
func (i *Issue) HasMoreComments() bool {
	return i.hasMoreComments
}

// CommentsFragment drafts the next comment continuation request for this
// issue.
func (i *Issue) CommentsFragment(alias string) github.Fragment {
	return github.CommentPageFragment(alias, i.URL, i.commentsCursor)
}

// ContainsChanges reports whether the issue itself, not its comments,
// changed inside the window.
func (i *Issue) ContainsChanges() bool {
	return i.WithinWindow(i.window)
}

// TotalChanges counts the retained comments plus one for the issue's own
// change when present.
func (i *Issue) TotalChanges() int {
	total := len(i.Comments)
	if i.ContainsChanges() {
		total++
	}
	return total
}

// DefaultLength is the rendering cost of the issue's chrome: the title
// line, plus the status line with an ellipsis body when the issue itself
// changed. Comment chrome is accounted separately per comment.
func (i *Issue) DefaultLength() int {
	length := len(i.titleLine())
	if i.ContainsChanges() {
		length += len(i.statusBlock(ellipsis))
	}
	return length
}

// SimpleLink is the degraded one-line reference used when the full
// rendering no longer fits the post budget.
func (i *Issue) SimpleLink() string {
	return fmt.Sprintf("[#%d](%s)", i.Number, i.URL)
}

// Markdown renders the issue: title line, status block with the trimmed
// body when the issue changed, then all comments in last-change order.
// Rendering never mutates the issue; the sort works on a copy.
func (i *Issue) Markdown() string {
	var b strings.Builder
	b.WriteString(i.titleLine())
	if i.ContainsChanges() {
		b.WriteString(i.statusBlock(i.Body.Rendered()))
	}

	comments := append([]*Comment(nil), i.Comments...)
	sort.SliceStable(comments, func(a, c int) bool {
		return comments[a].LastChangeDate().Before(comments[c].LastChangeDate())
	})
	for _, comment := range comments {
		b.WriteString(comment.Markdown())
	}
	return b.String()
}

func (i *Issue) titleLine() string {
	return fmt.Sprintf(issueTitleTemplate, i.Title, i.Number, i.URL)
}

func (i *Issue) statusBlock(body string) string {
	return fmt.Sprintf(issueTemplate,
		i.LastChangeAuthor(),
		i.StatusLabel(i.window),
		formatLocal(i.LastChangeDate()),
		body)
}
