package digest

import (
	"fmt"
)

const commentTemplate = "\n`@%s` %s this [comment](%s) on %s\n%s\n\n\n"

// Comment is one issue comment inside the digest window. A nil body means
// the comment content was deleted upstream.
type Comment struct {
	ChangeMeta
	SourceLink string
	Body       *Content

	window TimeWindow
}

func (c *Comment) IsDeleted() bool {
	return c.Body == nil
}

// DefaultLength is the rendering cost of the comment's chrome, with the
// body replaced by the ellipsis placeholder.
func (c *Comment) DefaultLength() int {
	return len(c.render(ellipsis))
}

// Markdown renders the comment with its trimmed body.
func (c *Comment) Markdown() string {
	return c.render(c.Body.Rendered())
}

func (c *Comment) render(body string) string {
	return fmt.Sprintf(commentTemplate,
		c.LastChangeAuthor(),
		c.StatusLabel(c.window),
		c.SourceLink,
		formatLocal(c.LastChangeDate()),
		body)
}
