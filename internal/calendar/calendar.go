// Package calendar implements the perpetual month-grid arithmetic: leap
// years, month lengths, the weekday alignment of any month's first day, and
// the fixed 42-cell grid spanning the trailing days of the previous month,
// the displayed month, and the leading days of the next. All functions are
// pure; the only package state is a set of derived lookup tables built once
// at startup.
package calendar

import (
	"errors"
	"fmt"
)

// MinYear is the floor year. Navigation never goes below it; years above it
// are unbounded.
const MinYear = 1600

// Month identifies one of the twelve months by its zero-based ordinal,
// January = 0 through December = 11.
type Month int

// Months of the year.
const (
	January Month = iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// Sentinel errors for precondition violations.
var (
	ErrInvalidMonth   = errors.New("month ordinal out of range")
	ErrYearBelowFloor = errors.New("year precedes the floor year")
)

var monthNames = [12]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// daysPerMonth holds the fixed month lengths; February's leap day is applied
// by DaysInMonth, never stored here.
var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// cumulativeDays[m] is the number of days in all months before m. Built once
// at startup from daysPerMonth.
var cumulativeDays [12]int

func init() {
	for m := 1; m < 12; m++ {
		cumulativeDays[m] = cumulativeDays[m-1] + daysPerMonth[m-1]
	}
}

// Valid reports whether m is one of the twelve month ordinals.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the English month name, or a placeholder for ordinals
// outside 0..11.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// MonthNames returns the twelve month names in ordinal order.
func MonthNames() []string {
	names := make([]string, len(monthNames))
	copy(names, monthNames[:])
	return names
}

// IsLeapYear reports whether year is a Gregorian leap year: divisible by 4
// and not by 100, unless also divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month, 29 for February
// in leap years.
func DaysInMonth(m Month, year int) int {
	if m == February && IsLeapYear(year) {
		return daysPerMonth[February] + 1
	}
	return daysPerMonth[m]
}

// CumulativeOffset returns the number of days in the year before the first
// of the given month, using the fixed month lengths.
func CumulativeOffset(m Month) int {
	return cumulativeDays[m]
}

// YearMonth is a (month, year) pair, the unit of navigation and display.
type YearMonth struct {
	Month Month `json:"month"`
	Year  int   `json:"year"`
}

// NewYearMonth validates the pair: the month ordinal must be in 0..11 and
// the year at or above MinYear. The arithmetic itself is total over all
// integers; this constructor is where callers enforce the floor.
func NewYearMonth(m Month, year int) (YearMonth, error) {
	if !m.Valid() {
		return YearMonth{}, fmt.Errorf("%w: %d", ErrInvalidMonth, int(m))
	}
	if year < MinYear {
		return YearMonth{}, fmt.Errorf("%w: %d", ErrYearBelowFloor, year)
	}
	return YearMonth{Month: m, Year: year}, nil
}

// Label returns the display heading, e.g. "August 2026".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// PrevMonth returns the preceding month, wrapping December of the prior year
// before January.
func (ym YearMonth) PrevMonth() YearMonth {
	m := ym.Month + 11
	return YearMonth{Month: m % 12, Year: ym.Year + int(m)/12 - 1}
}

// NextMonth returns the following month, wrapping January of the next year
// after December.
func (ym YearMonth) NextMonth() YearMonth {
	m := ym.Month + 1
	return YearMonth{Month: m % 12, Year: ym.Year + int(m)/12}
}

// PrevYear returns the same month one year earlier.
func (ym YearMonth) PrevYear() YearMonth {
	return YearMonth{Month: ym.Month, Year: ym.Year - 1}
}

// NextYear returns the same month one year later.
func (ym YearMonth) NextYear() YearMonth {
	return YearMonth{Month: ym.Month, Year: ym.Year + 1}
}

// PrevMonthDisabled reports whether previous-month navigation is blocked,
// which happens only at January of the floor year.
func (ym YearMonth) PrevMonthDisabled() bool {
	return ym.Month == January && ym.Year == MinYear
}

// PrevYearDisabled reports whether previous-year navigation is blocked,
// which happens in any month of the floor year.
func (ym YearMonth) PrevYearDisabled() bool {
	return ym.Year == MinYear
}
