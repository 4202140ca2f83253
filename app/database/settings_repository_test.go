package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnection(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestSettingsStore_MissingStateYieldsDefaults(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.TargetIssueID != "" {
		t.Errorf("Fresh state should have no target issue, got %q", settings.TargetIssueID)
	}
	if len(settings.IgnoredIssues) != 0 {
		t.Errorf("Fresh state should have no ignored issues, got %v", settings.IgnoredIssues)
	}
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))

	if err := store.SetTargetIssueID("I_abc123"); err != nil {
		t.Fatalf("SetTargetIssueID failed: %v", err)
	}
	if err := store.SeedIgnoredIssues([]int{7, 3}); err != nil {
		t.Fatalf("SeedIgnoredIssues failed: %v", err)
	}
	if err := store.AddIgnoredIssue(42); err != nil {
		t.Fatalf("AddIgnoredIssue failed: %v", err)
	}
	// duplicates are absorbed
	if err := store.AddIgnoredIssue(7); err != nil {
		t.Fatalf("AddIgnoredIssue duplicate failed: %v", err)
	}

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.TargetIssueID != "I_abc123" {
		t.Errorf("Expected target I_abc123, got %q", settings.TargetIssueID)
	}
	expected := []int{3, 7, 42}
	if len(settings.IgnoredIssues) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, settings.IgnoredIssues)
	}
	for i, n := range expected {
		if settings.IgnoredIssues[i] != n {
			t.Errorf("Expected ignored issues %v, got %v", expected, settings.IgnoredIssues)
			break
		}
	}
}

func TestSettingsStore_TargetIssueOverwrite(t *testing.T) {
	store := NewSettingsStore(newTestDB(t))

	if err := store.SetTargetIssueID("I_first"); err != nil {
		t.Fatalf("SetTargetIssueID failed: %v", err)
	}
	if err := store.SetTargetIssueID("I_second"); err != nil {
		t.Fatalf("SetTargetIssueID overwrite failed: %v", err)
	}

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.TargetIssueID != "I_second" {
		t.Errorf("Expected overwritten target, got %q", settings.TargetIssueID)
	}
}
