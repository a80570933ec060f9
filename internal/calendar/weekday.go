package calendar

var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// WeekdayNames returns the seven weekday names in column order, Sunday first.
func WeekdayNames() []string {
	names := make([]string, len(weekdayNames))
	copy(names, weekdayNames[:])
	return names
}

// WeekdayName returns the name for a 0..6 weekday index.
func WeekdayName(i int) string {
	return weekdayNames[floorMod(i, 7)]
}

// WeekdayOfFirst returns the weekday column index, 0 = Sunday through
// 6 = Saturday, on which the first day of the given month falls. The value
// is derived from three weekday shifts relative to the floor year: one per
// elapsed year, one per day of earlier months in the displayed year, and one
// per elapsed leap day. CumulativeOffset uses the common-year table, so the
// displayed year's own February 29 is added back for March onward. January 1
// of the floor year 1600 lands on index 6, a Saturday.
func WeekdayOfFirst(m Month, year int) int {
	idx := (year-MinYear)%7 + CumulativeOffset(m)%7 + leapAdjustment(year) - 1
	if m > February && IsLeapYear(year) {
		idx++
	}
	return floorMod(idx, 7)
}

// leapAdjustment returns the weekday shift contributed by the leap days
// elapsed between the floor year's start and the given year's start. The
// given year's own leap day is not counted here.
func leapAdjustment(year int) int {
	y := year - MinYear
	return (ceilDiv(y, 4) - ceilDiv(y, 100) + ceilDiv(y, 400)) % 7
}

// floorMod returns a mod m with the result always in [0, m).
func floorMod(a, m int) int {
	return ((a % m) + m) % m
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	q, r := a/b, a%b
	if r > 0 {
		q++
	}
	return q
}
