package calendar

// GridSize is the fixed cell count of a month grid: six rows of seven
// weekday columns. The longest possible month (31 days starting on a
// Saturday) occupies 37 cells, so every month fits with room for next-month
// fill.
const GridSize = 42

// Fill tags which month a grid cell's day number belongs to.
type Fill int

// Fill values in grid order.
const (
	FillPrevious Fill = iota
	FillCurrent
	FillNext
)

var fillNames = [3]string{"previous", "current", "next"}

// String returns the lowercase fill tag used in API payloads.
func (f Fill) String() string {
	if f < FillPrevious || f > FillNext {
		return "invalid"
	}
	return fillNames[f]
}

// DayCell is one cell of the grid. YearMonth is the effective month the day
// number belongs to, which differs from the displayed month for fill cells.
type DayCell struct {
	Day       int
	Fill      Fill
	YearMonth YearMonth
}

// Date returns the cell's identity key, unique across a grid.
func (c DayCell) Date() Date {
	return Date{Year: c.YearMonth.Year, Month: c.YearMonth.Month, Day: c.Day}
}

// Grid is the ordered 42-cell month view. It is a value type: grids are
// rebuilt wholesale on every navigation and compared with ==, never mutated
// in place.
type Grid [GridSize]DayCell

// BuildGrid lays out the 42 cells for the given month: WeekdayOfFirst cells
// of previous-month fill, the month's days in order, then next-month fill.
// The computation is pure and deterministic; the same YearMonth always
// yields the identical Grid.
func BuildGrid(ym YearMonth) Grid {
	start := WeekdayOfFirst(ym.Month, ym.Year)
	numDays := DaysInMonth(ym.Month, ym.Year)
	prev := ym.PrevMonth()
	next := ym.NextMonth()
	prevDays := DaysInMonth(prev.Month, prev.Year)

	var g Grid
	for i := 1; i <= GridSize; i++ {
		switch {
		case i <= start:
			g[i-1] = DayCell{Day: prevDays - start + i, Fill: FillPrevious, YearMonth: prev}
		case i > start+numDays:
			g[i-1] = DayCell{Day: i - start - numDays, Fill: FillNext, YearMonth: next}
		default:
			g[i-1] = DayCell{Day: i - start, Fill: FillCurrent, YearMonth: ym}
		}
	}
	return g
}

// Page bundles everything a display layer needs for one month: the grid, the
// heading label and the two navigation-disabled flags. Consumers project it
// onto screen elements without any date arithmetic of their own.
type Page struct {
	YearMonth         YearMonth
	Label             string
	Grid              Grid
	PrevMonthDisabled bool
	PrevYearDisabled  bool
}

// BuildPage builds the grid for ym together with its label and boundary
// flags, recomputed fresh on every call.
func BuildPage(ym YearMonth) Page {
	return Page{
		YearMonth:         ym,
		Label:             ym.Label(),
		Grid:              BuildGrid(ym),
		PrevMonthDisabled: ym.PrevMonthDisabled(),
		PrevYearDisabled:  ym.PrevYearDisabled(),
	}
}
