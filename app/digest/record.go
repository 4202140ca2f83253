package digest

import (
	"strings"
	"time"

	"github.com/fholst/issue-digest/app/github"
)

// TimeWindow is the inclusive interval since the last digest. Immutable
// for the duration of one run.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

const displayTimeLayout = "2006-01-02 15:04:05"

// formatLocal renders a timestamp in the process-local timezone, which
// cfg configures from the TZ setting.
func formatLocal(t time.Time) string {
	return t.In(time.Local).Format(displayTimeLayout)
}

// ChangeMeta is the creation/edit metadata shared by issues and comments.
// Embedded by both entity kinds rather than inherited, so the derived
// behavior lives in one place without coupling the types.
type ChangeMeta struct {
	Author    string
	CreatedAt time.Time
	Editor    string
	EditedAt  *time.Time
}

func newChangeMeta(author *github.Actor, createdAt time.Time, editor *github.Actor, editedAt *time.Time) ChangeMeta {
	m := ChangeMeta{CreatedAt: createdAt, EditedAt: editedAt}
	if author != nil {
		m.Author = author.Login
	}
	if editor != nil {
		m.Editor = editor.Login
	}
	return m
}

// IsModified reports whether the record has been edited since creation.
func (m ChangeMeta) IsModified() bool {
	return m.EditedAt != nil
}

// LastChangeDate is the edit time when modified, the creation time
// otherwise.
func (m ChangeMeta) LastChangeDate() time.Time {
	if m.IsModified() {
		return *m.EditedAt
	}
	return m.CreatedAt
}

// LastChangeAuthor is the editor when modified, the original author
// otherwise.
func (m ChangeMeta) LastChangeAuthor() string {
	if m.IsModified() {
		return m.Editor
	}
	return m.Author
}

// StatusLabel describes what happened to the record inside the window:
// "created", "modified", or "created and modified". A record that existed
// before the window and was not touched inside it reads "deleted" - it
// only shows up when its content was removed upstream.
func (m ChangeMeta) StatusLabel(w TimeWindow) string {
	var parts []string
	if w.Contains(m.CreatedAt) {
		parts = append(parts, "created")
	}
	if m.EditedAt != nil && w.Contains(*m.EditedAt) {
		parts = append(parts, "modified")
	}
	if len(parts) == 0 {
		return "deleted"
	}
	return strings.Join(parts, " and ")
}

// WithinWindow reports whether the record's last change falls inside the
// window.
func (m ChangeMeta) WithinWindow(w TimeWindow) bool {
	return w.Contains(m.LastChangeDate())
}
