package database

import (
	"database/sql"
	"errors"
	"fmt"
)

const targetIssueKey = "target_issue_id"

var _ SettingsRepository = (*SettingsStore)(nil)

// SettingsStore handles database operations for digest settings
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new settings repository
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// LoadSettings reads the persisted digest state. Absent rows yield the
// zero settings rather than an error, so a fresh or partially wiped
// database regenerates itself from defaults.
func (s *SettingsStore) LoadSettings() (*Settings, error) {
	settings := &Settings{}

	var target string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, targetIssueKey).Scan(&target)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read target issue id: %w", err)
	}
	settings.TargetIssueID = target

	rows, err := s.db.Query(`SELECT number FROM ignored_issues ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignored issues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number int
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan ignored issue: %w", err)
		}
		settings.IgnoredIssues = append(settings.IgnoredIssues, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignored issues: %w", err)
	}

	return settings, nil
}

// SetTargetIssueID persists the digest issue id.
func (s *SettingsStore) SetTargetIssueID(id string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, targetIssueKey, id)
	if err != nil {
		return fmt.Errorf("failed to persist target issue id: %w", err)
	}
	return nil
}

// AddIgnoredIssue appends one issue number to the persisted ignore list.
func (s *SettingsStore) AddIgnoredIssue(number int) error {
	_, err := s.db.Exec(`INSERT INTO ignored_issues (number) VALUES (?) ON CONFLICT (number) DO NOTHING`, number)
	if err != nil {
		return fmt.Errorf("failed to persist ignored issue: %w", err)
	}
	return nil
}

// SeedIgnoredIssues merges the configured seed numbers into the
// persisted ignore list.
func (s *SettingsStore) SeedIgnoredIssues(numbers []int) error {
	for _, number := range numbers {
		if err := s.AddIgnoredIssue(number); err != nil {
			return err
		}
	}
	return nil
}
