package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func storeWithEvent(date, title string) *StoreData {
	return &StoreData{
		Calendars: map[string]*EventSet{
			"personal": {Events: []Event{{Date: date, Title: title}}},
		},
		Metadata: map[string]string{},
	}
}

func TestLoadStoreFirstRun(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")
	Events = nil

	if err := LoadStore(); err != nil {
		t.Fatalf("LoadStore() failed: %v", err)
	}

	if Events == nil {
		t.Fatal("Events not initialized")
	}
	for _, name := range DefaultCalendars {
		if Events.Calendars[name] == nil {
			t.Errorf("Default calendar %q missing", name)
		}
	}
	if Events.Metadata[MetadataCreatedAt] == "" {
		t.Error("created_at metadata not set")
	}

	// First run persists the default store
	if _, err := os.Stat(DataFile); err != nil {
		t.Errorf("Data file not created: %v", err)
	}
}

func TestLoadStoreNormalizesPartialFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"missing calendars", `{"metadata":{}}`},
		{"null calendar entry", `{"calendars":{"personal":null},"metadata":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			DataFile = filepath.Join(t.TempDir(), "events.json")
			if err := os.WriteFile(DataFile, []byte(tt.data), FilePermissions); err != nil {
				t.Fatalf("Failed to write data file: %v", err)
			}

			if err := LoadStore(); err != nil {
				t.Fatalf("LoadStore() failed: %v", err)
			}
			if Events.Calendars == nil {
				t.Fatal("Calendars map not allocated")
			}
			if Events.Metadata == nil {
				t.Fatal("Metadata map not allocated")
			}
			for name, set := range Events.Calendars {
				if set == nil {
					t.Errorf("Calendar %q left nil", name)
				}
			}

			// The tmp-check path normalizes the same way
			tmpFile := DataFile + TmpSuffix
			if err := os.WriteFile(tmpFile, []byte(tt.data), FilePermissions); err != nil {
				t.Fatalf("Failed to write tmp file: %v", err)
			}
			if err := LoadStoreWithTmpCheck(); err != nil {
				t.Fatalf("LoadStoreWithTmpCheck() failed: %v", err)
			}
			if Events.Calendars == nil || Events.Metadata == nil {
				t.Error("Tmp load left store maps nil")
			}
		})
	}
}

func TestSaveAndReloadStore(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")
	Events = storeWithEvent("2026-03-10", "Dentist")

	if err := SaveStore(); err != nil {
		t.Fatalf("SaveStore() failed: %v", err)
	}

	// Clobber in-memory state, then reload from disk
	Events = storeWithEvent("2030-01-01", "Wrong")
	if err := LoadStore(); err != nil {
		t.Fatalf("LoadStore() failed: %v", err)
	}

	events, ok := GetCalendarEvents("personal")
	if !ok || len(events) != 1 || events[0].Title != "Dentist" {
		t.Errorf("Reloaded store has %+v, want the saved Dentist event", events)
	}
}

func TestSaveStoreCreatesBackup(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")
	Events = storeWithEvent("2026-03-10", "Dentist")

	if err := SaveStore(); err != nil {
		t.Fatalf("First SaveStore() failed: %v", err)
	}
	if err := SaveStore(); err != nil {
		t.Fatalf("Second SaveStore() failed: %v", err)
	}

	if _, err := os.Stat(DataFile + BackupSuffix); err != nil {
		t.Errorf("Backup file not created: %v", err)
	}
}

func TestLoadStoreWithTmpCheck(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")

	Events = storeWithEvent("2026-03-10", "Committed")
	if err := SaveStore(); err != nil {
		t.Fatalf("SaveStore() failed: %v", err)
	}

	// Stage unsaved changes in the tmp file
	Events = storeWithEvent("2026-03-11", "Unsaved")
	if err := saveTmpStore(); err != nil {
		t.Fatalf("saveTmpStore() failed: %v", err)
	}

	Events = nil
	if err := LoadStoreWithTmpCheck(); err != nil {
		t.Fatalf("LoadStoreWithTmpCheck() failed: %v", err)
	}

	events, _ := GetCalendarEvents("personal")
	if len(events) != 1 || events[0].Title != "Unsaved" {
		t.Errorf("Expected tmp store to win, got %+v", events)
	}

	// Without a tmp file the main store loads
	if err := os.Remove(DataFile + TmpSuffix); err != nil {
		t.Fatalf("Failed to remove tmp file: %v", err)
	}
	if err := LoadStoreWithTmpCheck(); err != nil {
		t.Fatalf("LoadStoreWithTmpCheck() failed: %v", err)
	}
	events, _ = GetCalendarEvents("personal")
	if len(events) != 1 || events[0].Title != "Committed" {
		t.Errorf("Expected main store, got %+v", events)
	}
}

func TestCommitStore(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")

	Events = storeWithEvent("2026-03-10", "Original")
	if err := SaveStore(); err != nil {
		t.Fatalf("SaveStore() failed: %v", err)
	}

	Events = storeWithEvent("2026-03-11", "Edited")
	if err := saveTmpStore(); err != nil {
		t.Fatalf("saveTmpStore() failed: %v", err)
	}

	if err := CommitStore(); err != nil {
		t.Fatalf("CommitStore() failed: %v", err)
	}

	// Tmp file promoted to main
	if HasTmpStore() {
		t.Error("Tmp file should be gone after commit")
	}
	data, err := os.ReadFile(DataFile)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}
	if !strings.Contains(string(data), "Edited") {
		t.Error("Main file should contain the committed changes")
	}

	// Previous main file backed up with a timestamp
	backupDir := filepath.Join(filepath.Dir(DataFile), BackupDir)
	entries, err := os.ReadDir(backupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected 1 backup file, got %v (err %v)", entries, err)
	}
	if !strings.HasSuffix(entries[0].Name(), BackupSuffix) {
		t.Errorf("Backup name %q missing suffix", entries[0].Name())
	}

	// Nothing left to commit
	if err := CommitStore(); err == nil {
		t.Error("CommitStore() should fail with no tmp changes")
	}
}

func TestRevertStore(t *testing.T) {
	DataFile = filepath.Join(t.TempDir(), "events.json")

	Events = storeWithEvent("2026-03-10", "Original")
	if err := SaveStore(); err != nil {
		t.Fatalf("SaveStore() failed: %v", err)
	}

	Events = storeWithEvent("2026-03-11", "Edited")
	if err := saveTmpStore(); err != nil {
		t.Fatalf("saveTmpStore() failed: %v", err)
	}

	if err := RevertStore(); err != nil {
		t.Fatalf("RevertStore() failed: %v", err)
	}

	if HasTmpStore() {
		t.Error("Tmp file should be gone after revert")
	}
	events, _ := GetCalendarEvents("personal")
	if len(events) != 1 || events[0].Title != "Original" {
		t.Errorf("Expected original store restored, got %+v", events)
	}

	// Nothing left to revert
	if err := RevertStore(); err == nil {
		t.Error("RevertStore() should fail with no tmp changes")
	}
}

func TestGetCalendarEventsCopies(t *testing.T) {
	Events = storeWithEvent("2026-03-10", "Dentist")

	events, ok := GetCalendarEvents("personal")
	if !ok {
		t.Fatal("personal calendar missing")
	}
	events[0].Title = "Mutated"

	fresh, _ := GetCalendarEvents("personal")
	if fresh[0].Title != "Dentist" {
		t.Error("GetCalendarEvents should return a copy")
	}

	if _, ok := GetCalendarEvents("nope"); ok {
		t.Error("Unknown calendar should report false")
	}
}
