package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// NewStoreData creates an empty store with the default calendars
func NewStoreData() *StoreData {
	store := &StoreData{
		Calendars: make(map[string]*EventSet, len(DefaultCalendars)),
		Metadata: map[string]string{
			MetadataCreatedAt: time.Now().Format(time.RFC3339),
			"source":          MetadataSource,
		},
	}
	for _, name := range DefaultCalendars {
		store.Calendars[name] = &EventSet{Events: []Event{}}
	}
	return store
}

// normalize allocates the maps and sets a hand-edited or partial data file
// may omit, so edit paths never write into a nil map
func (s *StoreData) normalize() {
	if s.Calendars == nil {
		s.Calendars = make(map[string]*EventSet)
	}
	if s.Metadata == nil {
		s.Metadata = make(map[string]string)
	}
	for name, set := range s.Calendars {
		if set == nil {
			s.Calendars[name] = &EventSet{Events: []Event{}}
		}
	}
}

// LoadStore loads the event data from the file, creating a default store
// on first run
func LoadStore() error {
	file, err := os.Open(DataFile)
	if os.IsNotExist(err) {
		log.Printf("⚠️  No data file at %s, creating default store", DataFile)
		EventsMutex.Lock()
		Events = NewStoreData()
		EventsMutex.Unlock()
		return SaveStore()
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing data file: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var newStore StoreData
	if err := json.Unmarshal(data, &newStore); err != nil {
		return err
	}
	newStore.normalize()

	EventsMutex.Lock()
	Events = &newStore
	EventsMutex.Unlock()

	return nil
}

// SaveStore saves the event data to the file with backup
func SaveStore() error {
	EventsMutex.RLock()
	defer EventsMutex.RUnlock()
	return saveStoreLocked()
}

// saveStoreLocked saves the store without locking (caller must hold lock)
func saveStoreLocked() error {
	data, err := json.MarshalIndent(Events, "", "  ")
	if err != nil {
		return err
	}

	// Create backup
	if _, err := os.Stat(DataFile); err == nil {
		backupFile := DataFile + BackupSuffix
		if err := os.Rename(DataFile, backupFile); err != nil {
			log.Printf("Warning: failed to create backup: %v", err)
		}
	}

	// Write to temp file first
	tmpFile := DataFile + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}

	// Rename temp file to actual file
	return os.Rename(tmpFile, DataFile)
}

// saveTmpStore saves the current store to tmp file (auto-save for edit mode)
func saveTmpStore() error {
	data, err := json.MarshalIndent(Events, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := DataFile + TmpSuffix
	return os.WriteFile(tmpFile, data, FilePermissions)
}

// LoadStoreWithTmpCheck loads the store from tmp if it exists, otherwise
// from the main file
func LoadStoreWithTmpCheck() error {
	tmpFile := DataFile + TmpSuffix

	// Check if tmp file exists
	if _, err := os.Stat(tmpFile); err == nil {
		log.Printf("⚠️  Found temporary data file: %s (loading unsaved changes)", tmpFile)
		return loadStoreFromFile(tmpFile)
	}

	// Load from main file
	return LoadStore()
}

// loadStoreFromFile loads the store from a specific file
func loadStoreFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing file: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var newStore StoreData
	if err := json.Unmarshal(data, &newStore); err != nil {
		return err
	}
	newStore.normalize()

	EventsMutex.Lock()
	Events = &newStore
	EventsMutex.Unlock()

	return nil
}

// CommitStore commits tmp changes: creates backup and makes tmp the new main
func CommitStore() error {
	EventsMutex.Lock()
	defer EventsMutex.Unlock()

	tmpFile := DataFile + TmpSuffix

	// Check if tmp file exists
	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to commit")
	}

	// Ensure backup directory exists
	backupDirPath := filepath.Join(filepath.Dir(DataFile), BackupDir)
	if err := os.MkdirAll(backupDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Create backup of current data file (if exists)
	if _, err := os.Stat(DataFile); err == nil {
		timestamp := time.Now().Unix()
		backupFile := filepath.Join(backupDirPath, fmt.Sprintf("%d_events.json%s", timestamp, BackupSuffix))
		if err := os.Rename(DataFile, backupFile); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("✅ Backup created: %s", backupFile)
	}

	// Make tmp file the new main file
	if err := os.Rename(tmpFile, DataFile); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}

	log.Printf("✅ Changes committed to %s", DataFile)
	return nil
}

// RevertStore discards tmp changes and reloads from the main file
func RevertStore() error {
	tmpFile := DataFile + TmpSuffix

	// Check if tmp file exists
	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to revert")
	}

	// Delete tmp file
	if err := os.Remove(tmpFile); err != nil {
		return fmt.Errorf("failed to remove tmp file: %w", err)
	}

	// Reload from main file
	if err := LoadStore(); err != nil {
		return fmt.Errorf("failed to reload events: %w", err)
	}

	log.Printf("✅ Changes reverted, reloaded from %s", DataFile)
	return nil
}

// HasTmpStore checks if a temporary data file exists
func HasTmpStore() bool {
	tmpFile := DataFile + TmpSuffix
	_, err := os.Stat(tmpFile)
	return err == nil
}

// GetCalendarEvents returns a copy of one calendar's events
func GetCalendarEvents(name string) ([]Event, bool) {
	EventsMutex.RLock()
	defer EventsMutex.RUnlock()

	set, ok := Events.Calendars[name]
	if !ok {
		return nil, false
	}
	events := make([]Event, len(set.Events))
	copy(events, set.Events)
	return events, true
}
