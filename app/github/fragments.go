package github

import (
	"encoding/json"
	"fmt"
	"time"
)

// Fragment is one aliased partial query. Several fragments are combined
// into a single GraphQL document per round trip.
type Fragment struct {
	Alias string
	Body  string
}

func (f Fragment) String() string {
	return f.Alias + ":" + f.Body
}

// quote renders s as a GraphQL string literal. GraphQL string escaping is
// a subset of JSON's, so the JSON encoder does the job.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

const timestampLayout = "2006-01-02T15:04:05Z"

const commentFields = `
author { login }
url
createdAt
lastEditedAt
body
editor { login }`

const issueFields = `
title
id
url
number
body
createdAt
author { login }
lastEditedAt
editor { login }`

// SearchIssuesFragment builds one listing page request: issues of repo
// updated at or after since, continuing from cursor ("" for the first
// page). The first comment page of every issue is embedded.
func SearchIssuesFragment(alias, repo string, since time.Time, cursor string) Fragment {
	after := "null"
	if cursor != "" {
		after = quote(cursor)
	}
	search := fmt.Sprintf("repo:%s is:issue updated:>=%s", repo, since.UTC().Format(timestampLayout))
	return Fragment{
		Alias: alias,
		Body: fmt.Sprintf(`search(first: 100, query: %s, type: ISSUE, after: %s) {
pageInfo { endCursor hasNextPage }
nodes { ... on Issue { %s
comments(first: 100) { pageInfo { endCursor hasNextPage } nodes { %s } } } } }`,
			quote(search), after, issueFields, commentFields),
	}
}

// CommentPageFragment builds one comment continuation request for the
// issue at url, resuming from cursor.
func CommentPageFragment(alias, url, cursor string) Fragment {
	return Fragment{
		Alias: alias,
		Body: fmt.Sprintf(`resource(url: %s) { ... on Issue {
comments(first: 100, after: %s) { pageInfo { endCursor hasNextPage } nodes { %s } } } }`,
			quote(url), quote(cursor), commentFields),
	}
}

func findRepositoryFragment(alias, owner, name string) Fragment {
	return Fragment{
		Alias: alias,
		Body:  fmt.Sprintf(`repository(owner: %s, name: %s) { id }`, quote(owner), quote(name)),
	}
}

func lastCommentDateFragment(alias, issueID string) Fragment {
	return Fragment{
		Alias: alias,
		Body:  fmt.Sprintf(`node(id: %s) { ... on Issue { comments(last: 1) { nodes { createdAt } } } }`, quote(issueID)),
	}
}

func lockStateFragment(alias, issueID string) Fragment {
	return Fragment{
		Alias: alias,
		Body:  fmt.Sprintf(`node(id: %s) { ... on Lockable { locked } }`, quote(issueID)),
	}
}

func lockIssueFragment(alias, issueID string) Fragment {
	return Fragment{
		Alias: alias,
		Body:  fmt.Sprintf(`lockLockable(input: {lockableId: %s}) { clientMutationId }`, quote(issueID)),
	}
}

func unlockIssueFragment(alias, issueID string) Fragment {
	return Fragment{
		Alias: alias,
		Body:  fmt.Sprintf(`unlockLockable(input: {lockableId: %s}) { clientMutationId }`, quote(issueID)),
	}
}

func createIssueFragment(alias, repoID, title, body string) Fragment {
	return Fragment{
		Alias: alias,
		Body: fmt.Sprintf(`createIssue(input: { repositoryId: %s, title: %s, body: %s }) { issue { id number } }`,
			quote(repoID), quote(title), quote(body)),
	}
}

// UpdateIssueFragment rewrites the body of an existing issue.
func UpdateIssueFragment(alias, issueID, body string) Fragment {
	return Fragment{
		Alias: alias,
		Body: fmt.Sprintf(`updateIssue(input: {id: %s, body: %s}) { issue { id } }`,
			quote(issueID), quote(body)),
	}
}

// AddCommentFragment appends a comment to an existing issue.
func AddCommentFragment(alias, issueID, body string) Fragment {
	return Fragment{
		Alias: alias,
		Body: fmt.Sprintf(`addComment(input: { subjectId: %s, body: %s }) { commentEdge { node { id } } }`,
			quote(issueID), quote(body)),
	}
}
