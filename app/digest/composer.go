package digest

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxPostSize is the platform's comment ceiling minus a safety
// buffer reserved for header variance.
const DefaultMaxPostSize = 65536 - 1000

const headerTemplate = `<details>
<summary>
<h2>Digest Summary: %s</h2>
<p>... contains %d changes across %d issues, since %s (timezone: %s)</p>
</summary>

%s

%s
</details>
`

const additionalIssuesTemplate = "[details to some update were omitted due to post length limitations]\nIssues omitted: %s"

// SubscribeText is the fixed body kept on the digest issue itself.
const SubscribeText = `
Subscribe to this issue to receive a periodic compilation of latest updates to this issue tracker.
Unsubscribe from this issue if you are not interested to receive such periodic updates.
`

// Digest is one rendered digest post with its aggregate counters.
type Digest struct {
	Markdown      string
	TotalChanges  int
	IssuesChanged int
}

// Composer turns an aggregated issue collection into the final markdown
// post, running the fitting pass and degrading whole issues to reference
// links when even trimmed bodies cannot fit.
type Composer struct {
	window      TimeWindow
	maxPostSize int
}

func NewComposer(window TimeWindow, maxPostSize int) *Composer {
	if maxPostSize <= 0 {
		maxPostSize = DefaultMaxPostSize
	}
	return &Composer{window: window, maxPostSize: maxPostSize}
}

// Compose renders the digest. Issues without any in-window change are
// excluded from the rendering and from every counter. A nil result means
// there is nothing to publish.
func (c *Composer) Compose(issues []*Issue) *Digest {
	var changed []*Issue
	totalChanges := 0
	for _, issue := range issues {
		if issue.TotalChanges() == 0 {
			continue
		}
		changed = append(changed, issue)
		totalChanges += issue.TotalChanges()
	}
	if totalChanges == 0 {
		return nil
	}

	headerOverhead := len(c.renderHeader(totalChanges, len(changed), "", ""))
	availableLen := c.maxPostSize - headerOverhead

	FitToSize(changed, availableLen)

	var rendered []string
	var omitted []string
	currentLen := 0
	exceeded := false
	for _, issue := range changed {
		if exceeded {
			omitted = append(omitted, issue.SimpleLink())
			continue
		}
		markdown := issue.Markdown()
		if currentLen+len(markdown) > availableLen {
			omitted = append(omitted, issue.SimpleLink())
			exceeded = true
			continue
		}
		rendered = append(rendered, markdown)
		currentLen += len(markdown)
	}

	additional := ""
	if len(omitted) > 0 {
		additional = fmt.Sprintf(additionalIssuesTemplate, strings.Join(omitted, " "))
	}

	return &Digest{
		Markdown:      c.renderHeader(totalChanges, len(changed), strings.Join(rendered, ""), additional),
		TotalChanges:  totalChanges,
		IssuesChanged: len(changed),
	}
}

func (c *Composer) renderHeader(totalChanges, issuesChanged int, body, additional string) string {
	return fmt.Sprintf(headerTemplate,
		formatLocal(c.window.End),
		totalChanges,
		issuesChanged,
		formatLocal(c.window.Start),
		time.Local.String(),
		body,
		additional)
}
