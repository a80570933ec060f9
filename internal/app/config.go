package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/crumpstrr33/gridcal/internal/calendar"
)

// Constants
const (
	DefaultDataFile = "events.json"
	BackupDir       = "backup"
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp.json"
	FilePermissions = 0644

	// Error messages
	ErrEditModeDisabled   = "Edit mode disabled"
	ErrNavigationDisabled = "Navigation disabled at range floor"
	ErrInvalidDateFormat  = "Invalid date format"
	ErrInvalidYear        = "Invalid year"
	ErrInvalidMonth       = "Invalid month"
	ErrInvalidOp          = "Invalid navigation op"
	ErrInvalidFormat      = "Invalid format"
	ErrInternalServer     = "Internal server error"
	ErrFailedToSave       = "Failed to save events"
	ErrCalendarNotFound   = "Calendar not found"
	ErrEventNotFound      = "Event not found"

	// Metadata keys
	MetadataCreatedAt = "created_at"
	MetadataSource    = "manual"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// ICS constants
	ICSProductID = "-//gridcal//Calendar//EN"
)

// Global variables
var (
	DataFile    = DefaultDataFile
	Events      *StoreData
	EventsMutex sync.RWMutex
	EditMode    bool

	// Months of imported occurrences kept past the current date
	ImportWindowMonths = 12

	// Embedded pages (set by main)
	IndexHTML []byte
	EditHTML  []byte

	// Today is captured once at startup and never refreshed
	Today = calendar.DateOf(time.Now())
)

// DefaultCalendars are the named calendars created on first run
var DefaultCalendars = []string{
	"personal",
	"work",
	"birthdays",
}

func init() {
	// Resolve the data file against the working directory
	if cwd, err := os.Getwd(); err == nil {
		DataFile = filepath.Join(cwd, DefaultDataFile)
	}
}
