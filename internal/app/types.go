package app

import "github.com/crumpstrr33/gridcal/internal/calendar"

// Event is a single dated entry in a named calendar
type Event struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

// EventSet holds the events of one named calendar
type EventSet struct {
	Events []Event `json:"events"`
}

// StoreData is the complete persisted event structure
type StoreData struct {
	Calendars map[string]*EventSet `json:"calendars"`
	Metadata  map[string]string    `json:"metadata"`
}

// eventView is an Event annotated with its calendar name for API payloads
type eventView struct {
	Calendar string `json:"calendar"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
}

// cellView is one grid cell as served to display layers
type cellView struct {
	Day     int         `json:"day"`
	Month   int         `json:"month"`
	Year    int         `json:"year"`
	Fill    string      `json:"fill"`
	Date    string      `json:"date"`
	Today   bool        `json:"today"`
	Holiday string      `json:"holiday,omitempty"`
	Events  []eventView `json:"events,omitempty"`
}

// pageView is the full month payload: grid, label and navigation state
type pageView struct {
	Year              int        `json:"year"`
	Month             int        `json:"month"`
	Label             string     `json:"label"`
	PrevMonthDisabled bool       `json:"prevMonthDisabled"`
	PrevYearDisabled  bool       `json:"prevYearDisabled"`
	Today             string     `json:"today"`
	Cells             []cellView `json:"cells"`
}

// buildPageView projects a core page into the API shape, joining events and
// holidays onto each cell by its identity date
func buildPageView(page calendar.Page) pageView {
	events := eventsByDate()
	holidays := holidaysForGrid(page.Grid)

	cells := make([]cellView, 0, calendar.GridSize)
	for _, cell := range page.Grid {
		date := cell.Date()
		key := date.String()
		cells = append(cells, cellView{
			Day:     cell.Day,
			Month:   int(cell.YearMonth.Month),
			Year:    cell.YearMonth.Year,
			Fill:    cell.Fill.String(),
			Date:    key,
			Today:   date == Today,
			Holiday: holidays[key],
			Events:  events[key],
		})
	}

	return pageView{
		Year:              page.YearMonth.Year,
		Month:             int(page.YearMonth.Month),
		Label:             page.Label,
		PrevMonthDisabled: page.PrevMonthDisabled,
		PrevYearDisabled:  page.PrevYearDisabled,
		Today:             Today.String(),
		Cells:             cells,
	}
}

// holidaysForGrid collects the holiday names for every year the grid's
// cells touch (at most two around a January or December view)
func holidaysForGrid(grid calendar.Grid) map[string]string {
	merged := make(map[string]string)
	seen := make(map[int]bool, 2)
	for _, cell := range grid {
		year := cell.YearMonth.Year
		if seen[year] {
			continue
		}
		seen[year] = true
		for date, name := range Holidays(year) {
			merged[date] = name
		}
	}
	return merged
}
