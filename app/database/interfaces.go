package database

// SettingsRepository persists the digest target and ignore list between
// runs. Missing rows are not errors: callers get zero values and the
// state is regenerated from defaults on the next save.
type SettingsRepository interface {
	LoadSettings() (*Settings, error)
	SetTargetIssueID(id string) error
	AddIgnoredIssue(number int) error
	SeedIgnoredIssues(numbers []int) error
}

// RunRepository records digest run history for the operational API.
type RunRepository interface {
	InsertRun(run Run) error
	FinishRun(run Run) error
	GetRecentRuns(limit int) ([]Run, error)
	GetRunStats() (total int, posted int, failed int, err error)
}
