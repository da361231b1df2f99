package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

func TestWriteLoadCSV_RoundTrip(t *testing.T) {
	users := testUsers()
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	records, err := Build(users, BuildConfig{Start: start, Days: 20}, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "activity.csv")
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	loaded, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if len(loaded) != len(records) {
		t.Fatalf("Expected %d records after round trip, got %d", len(records), len(loaded))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Fatalf("Record %d changed across round trip:\nwrote %+v\nread  %+v", i, records[i], loaded[i])
		}
	}
}

func TestLoadCSV_SkipsMalformedRows(t *testing.T) {
	users := testUsers()[:1]
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	records, err := Build(users, BuildConfig{Start: start, Days: 5}, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "activity.csv")
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	// Corrupt one row: a counter that is not an integer.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	fields := strings.Split(lines[2], ",")
	fields[4] = "not-a-number"
	lines[2] = strings.Join(fields, ",")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	loaded, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed on recoverable corruption: %v", err)
	}
	if len(loaded) != len(records)-1 {
		t.Errorf("Expected %d records after skipping the bad row, got %d", len(records)-1, len(loaded))
	}
}

func TestLoadCSV_RejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "user,role\nBB-1,Analyst\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := LoadCSV(path); err == nil {
		t.Error("Expected error for mismatched header, got nil")
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing dataset, got nil")
	}
}
