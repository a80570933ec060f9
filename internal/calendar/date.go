package calendar

import (
	"fmt"
	"time"
)

// Date is the identity key of a single day: effective year, month ordinal
// and day number. Being a comparable struct it can be used directly as a map
// key and compared with ==, so "is this cell today" is plain key equality
// with no string formatting involved.
type Date struct {
	Year  int   `json:"year"`
	Month Month `json:"month"`
	Day   int   `json:"day"`
}

// DateOf converts a wall-clock time to its identity key.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: Month(int(t.Month()) - 1), Day: t.Day()}
}

// String formats the date as YYYY-MM-DD with the human 1-based month number.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month)+1, d.Day)
}

// YearMonth returns the (month, year) pair the date belongs to.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Month: d.Month, Year: d.Year}
}
