package github

import (
	"time"
)

// Actor mirrors the GraphQL actor object. A nil actor means the account
// behind a record was deleted upstream.
type Actor struct {
	Login string `json:"login"`
}

type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// CommentNode is one issue comment as returned by the listing search and
// the per-issue comment continuation. An empty Body marks a comment whose
// content was deleted.
type CommentNode struct {
	Author       *Actor     `json:"author"`
	URL          string     `json:"url"`
	Body         string     `json:"body"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastEditedAt *time.Time `json:"lastEditedAt"`
	Editor       *Actor     `json:"editor"`
}

type CommentPage struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Nodes    []*CommentNode `json:"nodes"`
}

// IssueNode is one issue from the listing search, with its first comment
// page embedded.
type IssueNode struct {
	ID           string      `json:"id"`
	Number       int         `json:"number"`
	URL          string      `json:"url"`
	Title        string      `json:"title"`
	Body         string      `json:"body"`
	CreatedAt    time.Time   `json:"createdAt"`
	Author       *Actor      `json:"author"`
	LastEditedAt *time.Time  `json:"lastEditedAt"`
	Editor       *Actor      `json:"editor"`
	Comments     CommentPage `json:"comments"`
}

// SearchPage is one page of the issue listing search. Nodes may contain
// nulls for results that stopped being visible between pagination steps.
type SearchPage struct {
	PageInfo PageInfo     `json:"pageInfo"`
	Nodes    []*IssueNode `json:"nodes"`
}

// IssueResource wraps a comment continuation response, which nests the
// comment page under the resolved issue resource.
type IssueResource struct {
	Comments CommentPage `json:"comments"`
}
