package app

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/crumpstrr33/gridcal/internal/calendar"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// RequireEditMode validates that edit mode is enabled
func RequireEditMode(w http.ResponseWriter) bool {
	if !EditMode {
		http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
		return false
	}
	return true
}

// SortEventsByDate sorts events by date in ascending order
func SortEventsByDate(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}

// ParseDate validates a YYYY-MM-DD string against the supported range
func ParseDate(s string) (calendar.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	d := calendar.DateOf(t)
	if d.Year < calendar.MinYear {
		return calendar.Date{}, fmt.Errorf("invalid date %q: %w", s, calendar.ErrYearBelowFloor)
	}
	return d, nil
}

// CalendarNames returns the sorted names of all stored calendars
func CalendarNames() []string {
	EventsMutex.RLock()
	defer EventsMutex.RUnlock()

	names := make([]string, 0, len(Events.Calendars))
	for name := range Events.Calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// eventsByDate joins all calendars into a date-keyed lookup for grid cells
func eventsByDate() map[string][]eventView {
	EventsMutex.RLock()
	defer EventsMutex.RUnlock()

	byDate := make(map[string][]eventView)
	for _, name := range sortedCalendarNamesLocked() {
		for _, event := range Events.Calendars[name].Events {
			byDate[event.Date] = append(byDate[event.Date], eventView{
				Calendar: name,
				Date:     event.Date,
				Title:    event.Title,
				Notes:    event.Notes,
			})
		}
	}
	return byDate
}

// sortedCalendarNamesLocked lists calendar names (caller must hold lock)
func sortedCalendarNamesLocked() []string {
	names := make([]string, 0, len(Events.Calendars))
	for name := range Events.Calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
