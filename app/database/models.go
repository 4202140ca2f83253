package database

import (
	"time"
)

// Settings is the persisted digest state. TargetIssueID empty means the
// digest issue has not been created yet.
type Settings struct {
	TargetIssueID string
	IgnoredIssues []int
}

// Run is one recorded digest run.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    *time.Time
	WindowStart   time.Time
	WindowEnd     time.Time
	TotalChanges  int
	IssuesChanged int
	Posted        bool
	Error         string
}
