package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testRun(posted bool, errMsg string) Run {
	started := time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC)
	finished := started.Add(30 * time.Second)
	return Run{
		ID:            uuid.NewString(),
		StartedAt:     started,
		FinishedAt:    &finished,
		WindowStart:   started.AddDate(0, 0, -7),
		WindowEnd:     started,
		TotalChanges:  5,
		IssuesChanged: 2,
		Posted:        posted,
		Error:         errMsg,
	}
}

func TestRunStore_InsertAndFinish(t *testing.T) {
	store := NewRunStore(newTestDB(t))

	run := testRun(true, "")
	if err := store.InsertRun(run); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	if err := store.FinishRun(run); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := store.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != run.ID {
		t.Errorf("Expected run id %s, got %s", run.ID, got.ID)
	}
	if got.TotalChanges != 5 || got.IssuesChanged != 2 {
		t.Errorf("Expected counters 5/2, got %d/%d", got.TotalChanges, got.IssuesChanged)
	}
	if !got.Posted {
		t.Error("Expected a posted run")
	}
	if got.FinishedAt == nil {
		t.Error("Expected a finish timestamp")
	}
}

func TestRunStore_RecentRunsOrderedNewestFirst(t *testing.T) {
	store := NewRunStore(newTestDB(t))

	older := testRun(false, "")
	older.StartedAt = older.StartedAt.Add(-time.Hour)
	newer := testRun(true, "")

	if err := store.InsertRun(older); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	if err := store.InsertRun(newer); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	runs, err := store.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Error("Runs should be ordered newest first")
	}
}

func TestRunStore_Stats(t *testing.T) {
	store := NewRunStore(newTestDB(t))

	for _, run := range []Run{testRun(true, ""), testRun(false, "transport error"), testRun(false, "")} {
		if err := store.InsertRun(run); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
		if err := store.FinishRun(run); err != nil {
			t.Fatalf("FinishRun failed: %v", err)
		}
	}

	total, posted, failed, err := store.GetRunStats()
	if err != nil {
		t.Fatalf("GetRunStats failed: %v", err)
	}
	if total != 3 || posted != 1 || failed != 1 {
		t.Errorf("Expected stats 3/1/1, got %d/%d/%d", total, posted, failed)
	}
}
