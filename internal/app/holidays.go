package app

import (
	"github.com/crumpstrr33/gridcal/internal/calendar"
)

// Weekday indexes matching the grid's Sunday-first columns
const (
	sunday = iota
	monday
	tuesday
	wednesday
	thursday
	friday
	saturday
)

// Holidays returns the US public holidays for the given year
func Holidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays
	holidays[formatDate(year, calendar.January, 1)] = "New Year's Day"
	holidays[formatDate(year, calendar.June, 19)] = "Juneteenth"
	holidays[formatDate(year, calendar.July, 4)] = "Independence Day"
	holidays[formatDate(year, calendar.November, 11)] = "Veterans Day"
	holidays[formatDate(year, calendar.December, 25)] = "Christmas Day"

	// Floating holidays anchored to grid weekday columns
	holidays[formatDate(year, calendar.January, nthWeekday(year, calendar.January, monday, 3))] = "Martin Luther King Jr. Day"
	holidays[formatDate(year, calendar.February, nthWeekday(year, calendar.February, monday, 3))] = "Presidents' Day"
	holidays[formatDate(year, calendar.May, lastWeekday(year, calendar.May, monday))] = "Memorial Day"
	holidays[formatDate(year, calendar.September, nthWeekday(year, calendar.September, monday, 1))] = "Labor Day"
	holidays[formatDate(year, calendar.November, nthWeekday(year, calendar.November, thursday, 4))] = "Thanksgiving"

	// Easter Sunday (movable)
	easterMonth, easterDay := calculateEaster(year)
	holidays[formatDate(year, easterMonth, easterDay)] = "Easter Sunday"

	return holidays
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) (calendar.Month, int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return calendar.Month(month - 1), day
}

// nthWeekday returns the day of month of the nth given weekday, using the
// same weekday source that positions the grid
func nthWeekday(year int, month calendar.Month, weekday, n int) int {
	first := calendar.WeekdayOfFirst(month, year)
	offset := ((weekday-first)%7 + 7) % 7
	return 1 + offset + 7*(n-1)
}

// lastWeekday returns the day of month of the last given weekday
func lastWeekday(year int, month calendar.Month, weekday int) int {
	numDays := calendar.DaysInMonth(month, year)
	last := (calendar.WeekdayOfFirst(month, year) + numDays - 1) % 7
	return numDays - ((last-weekday)%7+7)%7
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year int, month calendar.Month, day int) string {
	return calendar.Date{Year: year, Month: month, Day: day}.String()
}
