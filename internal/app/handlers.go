package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crumpstrr33/gridcal/internal/calendar"
	"github.com/crumpstrr33/gridcal/internal/ics"
)

// ServeIndex serves the month view HTML
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(IndexHTML); err != nil {
		log.Printf("Error writing index HTML: %v", err)
	}
}

// ServeEdit serves the editor interface HTML
func ServeEdit(w http.ResponseWriter, r *http.Request) {
	if !RequireEditMode(w) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(EditHTML); err != nil {
		log.Printf("Error writing edit HTML: %v", err)
	}
}

// GetConfig returns the application configuration
func GetConfig(w http.ResponseWriter, r *http.Request) {
	config := map[string]interface{}{
		"months":     calendar.MonthNames(),
		"weekdays":   calendar.WeekdayNames(),
		"minYear":    calendar.MinYear,
		"today":      Today.String(),
		"todayYear":  Today.Year,
		"todayMonth": int(Today.Month),
		"calendars":  CalendarNames(),
		"editMode":   EditMode,
		"holidays":   Holidays(Today.Year),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(config); err != nil {
		log.Printf("Error encoding config: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// yearMonthFromQuery reads the year and month query params, defaulting to
// the startup date, and returns an error message on invalid input
func yearMonthFromQuery(r *http.Request) (calendar.YearMonth, string) {
	year := Today.Year
	month := Today.Month

	if s := r.URL.Query().Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return calendar.YearMonth{}, ErrInvalidYear
		}
		year = v
	}
	if s := r.URL.Query().Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return calendar.YearMonth{}, ErrInvalidMonth
		}
		month = calendar.Month(v)
	}

	ym, err := calendar.NewYearMonth(month, year)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidMonth) {
			return calendar.YearMonth{}, ErrInvalidMonth
		}
		return calendar.YearMonth{}, ErrInvalidYear
	}
	return ym, ""
}

// HandleGrid returns the 42-cell month page for a year and month
// Query params: year, month (0-11), both optional and defaulting to today
func HandleGrid(w http.ResponseWriter, r *http.Request) {
	ym, errMsg := yearMonthFromQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(buildPageView(calendar.BuildPage(ym))); err != nil {
		log.Printf("Error encoding grid: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleNavigate applies a navigation op to a month and returns the new page
// Query params: year, month (0-11), op (prevMonth|nextMonth|prevYear|nextYear)
func HandleNavigate(w http.ResponseWriter, r *http.Request) {
	ym, errMsg := yearMonthFromQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	var target calendar.YearMonth
	switch r.URL.Query().Get("op") {
	case "prevMonth":
		if ym.PrevMonthDisabled() {
			http.Error(w, ErrNavigationDisabled, http.StatusBadRequest)
			return
		}
		target = ym.PrevMonth()
	case "nextMonth":
		target = ym.NextMonth()
	case "prevYear":
		if ym.PrevYearDisabled() {
			http.Error(w, ErrNavigationDisabled, http.StatusBadRequest)
			return
		}
		target = ym.PrevYear()
	case "nextYear":
		target = ym.NextYear()
	default:
		http.Error(w, ErrInvalidOp, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(buildPageView(calendar.BuildPage(target))); err != nil {
		log.Printf("Error encoding grid: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleHealth reports service liveness
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStoreCommit commits temporary changes
func HandleStoreCommit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := CommitStore(); err != nil {
		log.Printf("Error committing store: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStoreRevert reverts temporary changes
func HandleStoreRevert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	if err := RevertStore(); err != nil {
		log.Printf("Error reverting store: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleStoreStatus returns whether there are unsaved changes
func HandleStoreStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireEditMode(w) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	status := map[string]bool{
		"has_changes": HasTmpStore(),
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// AddEvent adds a new event to a calendar (edit mode only)
func AddEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Calendar string `json:"calendar"`
		Date     string `json:"date"`
		Title    string `json:"title"`
		Notes    string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate date format and range
	if _, err := ParseDate(req.Date); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	EventsMutex.Lock()
	defer EventsMutex.Unlock()

	// Initialize calendar if needed
	if Events.Calendars[req.Calendar] == nil {
		Events.Calendars[req.Calendar] = &EventSet{Events: []Event{}}
	}

	// Check if event already exists
	for _, e := range Events.Calendars[req.Calendar].Events {
		if e.Date == req.Date && e.Title == req.Title {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(map[string]string{"status": "exists"}); err != nil {
				log.Printf("Error encoding response: %v", err)
			}
			return
		}
	}

	// Add event
	event := Event{
		Date:  req.Date,
		Title: req.Title,
		Notes: req.Notes,
	}
	Events.Calendars[req.Calendar].Events = append(
		Events.Calendars[req.Calendar].Events,
		event,
	)

	// Sort by date
	SortEventsByDate(Events.Calendars[req.Calendar].Events)

	// Auto-save to tmp file
	if err := saveTmpStore(); err != nil {
		log.Printf("Error saving tmp store: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DeleteEvent deletes an event from a calendar (edit mode only)
func DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Calendar string `json:"calendar"`
		Date     string `json:"date"`
		Title    string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	EventsMutex.Lock()
	defer EventsMutex.Unlock()

	set, ok := Events.Calendars[req.Calendar]
	if !ok {
		http.Error(w, ErrCalendarNotFound, http.StatusNotFound)
		return
	}

	newEvents := []Event{}
	for _, e := range set.Events {
		if !(e.Date == req.Date && e.Title == req.Title) {
			newEvents = append(newEvents, e)
		}
	}
	set.Events = newEvents

	if err := saveTmpStore(); err != nil {
		log.Printf("Error saving tmp store: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// MoveEvent moves an event to a different date (edit mode only)
func MoveEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req struct {
		Calendar string `json:"calendar"`
		OldDate  string `json:"old_date"`
		NewDate  string `json:"new_date"`
		Title    string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := ParseDate(req.OldDate); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}
	if _, err := ParseDate(req.NewDate); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	EventsMutex.Lock()
	defer EventsMutex.Unlock()

	set, ok := Events.Calendars[req.Calendar]
	if !ok {
		http.Error(w, ErrCalendarNotFound, http.StatusNotFound)
		return
	}

	moved := false
	for i := range set.Events {
		if set.Events[i].Date == req.OldDate && set.Events[i].Title == req.Title {
			set.Events[i].Date = req.NewDate
			moved = true
			break
		}
	}
	if !moved {
		http.Error(w, ErrEventNotFound, http.StatusNotFound)
		return
	}
	SortEventsByDate(set.Events)

	if err := saveTmpStore(); err != nil {
		log.Printf("Error saving tmp store: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: calendar, format, year (optional), month (optional, 0-11)
func HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("calendar")
	format := r.URL.Query().Get("format")
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	events, ok := GetCalendarEvents(name)
	if !ok {
		http.Error(w, ErrCalendarNotFound, http.StatusNotFound)
		return
	}

	// Restrict to a year or a single month if requested
	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < calendar.MinYear {
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
			return
		}
		prefix := fmt.Sprintf("%04d-", year)
		if monthStr != "" {
			month, err := strconv.Atoi(monthStr)
			if err != nil || month < 0 || month > 11 {
				http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
				return
			}
			prefix = fmt.Sprintf("%04d-%02d-", year, month+1)
		}

		var filtered []Event
		for _, e := range events {
			if strings.HasPrefix(e.Date, prefix) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	switch format {
	case "ics":
		GenerateICS(w, r, name, events)
	case "csv":
		GenerateCSV(w, name, events)
	case "json":
		GenerateJSON(w, name, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe handles calendar subscription requests
// Returns an ICS feed with events from (startup year - 1) onwards
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path[len("/api/subscribe/"):]

	events, ok := GetCalendarEvents(name)
	if !ok {
		http.Error(w, ErrCalendarNotFound, http.StatusNotFound)
		return
	}

	// Include events from (startup year - 1) onwards
	minYear := Today.Year - 1
	var filtered []Event
	for _, e := range events {
		if len(e.Date) >= 4 {
			eventYear, err := strconv.Atoi(e.Date[:4])
			if err == nil && eventYear >= minYear {
				filtered = append(filtered, e)
			}
		}
	}

	GenerateSubscriptionICS(w, r, name, filtered)
}

// HandleImport imports events from an uploaded ICS feed (edit mode only)
// Query param: calendar (target calendar, created if missing)
func HandleImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	name := r.URL.Query().Get("calendar")
	if name == "" {
		http.Error(w, "Missing calendar name", http.StatusBadRequest)
		return
	}

	parsed, err := ics.Parse(r.Body)
	if err != nil {
		log.Printf("Error parsing ICS upload: %v", err)
		http.Error(w, "Invalid ICS data", http.StatusBadRequest)
		return
	}

	// Expand recurrences over the same window the subscription feed serves
	from := time.Date(Today.Year-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().AddDate(0, ImportWindowMonths, 0)
	occurrences := ics.Expand(parsed, from, to)

	EventsMutex.Lock()
	defer EventsMutex.Unlock()

	if Events.Calendars[name] == nil {
		Events.Calendars[name] = &EventSet{Events: []Event{}}
	}
	set := Events.Calendars[name]

	type eventKey struct {
		date  string
		title string
	}
	existing := make(map[eventKey]bool, len(set.Events))
	for _, e := range set.Events {
		existing[eventKey{e.Date, e.Title}] = true
	}

	imported, skipped := 0, 0
	for _, occ := range occurrences {
		key := eventKey{calendar.DateOf(occ.Date).String(), occ.Title}
		if existing[key] {
			skipped++
			continue
		}
		existing[key] = true
		set.Events = append(set.Events, Event{
			Date:  key.date,
			Title: key.title,
			Notes: occ.Notes,
		})
		imported++
	}
	SortEventsByDate(set.Events)

	if err := saveTmpStore(); err != nil {
		log.Printf("Error saving tmp store: %v", err)
		http.Error(w, ErrFailedToSave, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"status":   "ok",
		"imported": imported,
		"skipped":  skipped,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
