package calendar

// View tracks the currently displayed YearMonth for a serialized consumer
// such as the terminal UI. Navigation ops that are disabled at the floor
// year are no-ops; every applied op replaces the displayed YearMonth rather
// than mutating it, and the grid is rebuilt from scratch via Page. A View is
// not safe for concurrent use; callers apply one discrete action at a time.
type View struct {
	ym YearMonth
}

// NewView starts a view at the given month.
func NewView(ym YearMonth) *View {
	return &View{ym: ym}
}

// Current returns the displayed YearMonth.
func (v *View) Current() YearMonth {
	return v.ym
}

// Page builds the full display payload for the current month.
func (v *View) Page() Page {
	return BuildPage(v.ym)
}

// PrevMonth steps back one month unless at January of the floor year.
func (v *View) PrevMonth() {
	if v.ym.PrevMonthDisabled() {
		return
	}
	v.ym = v.ym.PrevMonth()
}

// NextMonth steps forward one month; forward navigation is unbounded.
func (v *View) NextMonth() {
	v.ym = v.ym.NextMonth()
}

// PrevYear steps back one year unless already in the floor year.
func (v *View) PrevYear() {
	if v.ym.PrevYearDisabled() {
		return
	}
	v.ym = v.ym.PrevYear()
}

// NextYear steps forward one year.
func (v *View) NextYear() {
	v.ym = v.ym.NextYear()
}

// Goto jumps directly to the given month, e.g. back to today's.
func (v *View) Goto(ym YearMonth) {
	v.ym = ym
}
