package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRun_GeneratesID(t *testing.T) {
	db := setupTestDB(t)

	runID, err := db.RecordRun(Run{
		Command:    "index",
		Status:     "success",
		Detail:     "presets-index.json",
		EntryCount: 3,
	}, nil)
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if runID == "" {
		t.Error("RecordRun() returned empty run id")
	}
}

func TestRecordRun_WithFiles(t *testing.T) {
	db := setupTestDB(t)

	files := []string{
		"presets/votesites/example_com.meta.json",
		"presets-index.json",
	}
	runID, err := db.RecordRun(Run{
		Command: "generate",
		Status:  "success",
		Detail:  "votesite:example",
		Issue:   42,
	}, files)
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	got, err := db.GetRunFiles(runID)
	if err != nil {
		t.Fatalf("GetRunFiles() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetRunFiles() = %v, want 2 files", got)
	}
	if got[0] != files[0] || got[1] != files[1] {
		t.Errorf("GetRunFiles() = %v, want %v in order", got, files)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.RecordRun(Run{Command: "index", Status: "success"}, nil); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(2) = %d runs, want 2", len(runs))
	}
	for _, run := range runs {
		if run.Command != "index" {
			t.Errorf("run.Command = %q, want index", run.Command)
		}
		if run.CreatedAt.IsZero() {
			t.Error("run.CreatedAt is zero")
		}
	}
}

func TestListRuns_Empty(t *testing.T) {
	db := setupTestDB(t)

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("ListRuns() = %d runs, want 0", len(runs))
	}
}
