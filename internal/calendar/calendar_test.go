package calendar

import (
	"errors"
	"testing"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1600, true},
		{1700, false},
		{1800, false},
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		month Month
		year  int
		want  int
	}{
		{"January", January, 2023, 31},
		{"February common year", February, 2023, 28},
		{"February leap year", February, 2024, 29},
		{"February century common", February, 1900, 28},
		{"February century leap", February, 2000, 29},
		{"April", April, 2024, 30},
		{"June", June, 1600, 30},
		{"September", September, 1999, 30},
		{"November", November, 2100, 30},
		{"December", December, 1600, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.month, tt.year); got != tt.want {
				t.Errorf("DaysInMonth(%s, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestCumulativeOffset(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{January, 0},
		{February, 31},
		{March, 59},
		{July, 181},
		{December, 334},
	}

	for _, tt := range tests {
		if got := CumulativeOffset(tt.month); got != tt.want {
			t.Errorf("CumulativeOffset(%s) = %d, want %d", tt.month, got, tt.want)
		}
	}

	// Each month's offset must exceed the previous one by exactly the
	// previous month's fixed length.
	for m := February; m <= December; m++ {
		gap := CumulativeOffset(m) - CumulativeOffset(m-1)
		if gap != DaysInMonth(m-1, 2023) {
			t.Errorf("offset gap before %s = %d, want %d", m, gap, DaysInMonth(m-1, 2023))
		}
	}
}

func TestNewYearMonth(t *testing.T) {
	tests := []struct {
		name    string
		month   Month
		year    int
		wantErr error
	}{
		{"valid", August, 2026, nil},
		{"floor year", January, MinYear, nil},
		{"month ordinal too high", Month(12), 2026, ErrInvalidMonth},
		{"negative month ordinal", Month(-1), 2026, ErrInvalidMonth},
		{"year below floor", December, 1599, ErrYearBelowFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ym, err := NewYearMonth(tt.month, tt.year)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewYearMonth(%d, %d) error = %v, want %v", int(tt.month), tt.year, err, tt.wantErr)
			}
			if err == nil && (ym.Month != tt.month || ym.Year != tt.year) {
				t.Errorf("NewYearMonth(%d, %d) = %+v", int(tt.month), tt.year, ym)
			}
		})
	}
}

func TestMonthString(t *testing.T) {
	if got := January.String(); got != "January" {
		t.Errorf("January.String() = %q", got)
	}
	if got := December.String(); got != "December" {
		t.Errorf("December.String() = %q", got)
	}
	if got := Month(12).String(); got != "Month(12)" {
		t.Errorf("Month(12).String() = %q", got)
	}
}

func TestLabel(t *testing.T) {
	ym := YearMonth{Month: August, Year: 2026}
	if got := ym.Label(); got != "August 2026" {
		t.Errorf("Label() = %q, want %q", got, "August 2026")
	}
}

func TestPrevNextMonth(t *testing.T) {
	tests := []struct {
		name string
		from YearMonth
		prev YearMonth
		next YearMonth
	}{
		{
			name: "mid-year",
			from: YearMonth{Month: June, Year: 2026},
			prev: YearMonth{Month: May, Year: 2026},
			next: YearMonth{Month: July, Year: 2026},
		},
		{
			name: "January wraps to prior December",
			from: YearMonth{Month: January, Year: 2026},
			prev: YearMonth{Month: December, Year: 2025},
			next: YearMonth{Month: February, Year: 2026},
		},
		{
			name: "December wraps to next January",
			from: YearMonth{Month: December, Year: 1600},
			prev: YearMonth{Month: November, Year: 1600},
			next: YearMonth{Month: January, Year: 1601},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.PrevMonth(); got != tt.prev {
				t.Errorf("PrevMonth() = %+v, want %+v", got, tt.prev)
			}
			if got := tt.from.NextMonth(); got != tt.next {
				t.Errorf("NextMonth() = %+v, want %+v", got, tt.next)
			}
		})
	}
}

func TestMonthRoundTrip(t *testing.T) {
	for _, year := range []int{1600, 1601, 1999, 2000, 2024, 2400} {
		for m := January; m <= December; m++ {
			ym := YearMonth{Month: m, Year: year}
			if got := ym.NextMonth().PrevMonth(); got != ym {
				t.Errorf("PrevMonth(NextMonth(%+v)) = %+v", ym, got)
			}
			if got := ym.PrevMonth().NextMonth(); got != ym {
				t.Errorf("NextMonth(PrevMonth(%+v)) = %+v", ym, got)
			}
			if got := ym.NextYear().PrevYear(); got != ym {
				t.Errorf("PrevYear(NextYear(%+v)) = %+v", ym, got)
			}
		}
	}
}

func TestBoundaryPredicates(t *testing.T) {
	tests := []struct {
		name         string
		ym           YearMonth
		prevMonthOff bool
		prevYearOff  bool
	}{
		{"January of floor year", YearMonth{Month: January, Year: MinYear}, true, true},
		{"February of floor year", YearMonth{Month: February, Year: MinYear}, false, true},
		{"December of floor year", YearMonth{Month: December, Year: MinYear}, false, true},
		{"January after floor year", YearMonth{Month: January, Year: MinYear + 1}, false, false},
		{"modern month", YearMonth{Month: August, Year: 2026}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ym.PrevMonthDisabled(); got != tt.prevMonthOff {
				t.Errorf("PrevMonthDisabled() = %v, want %v", got, tt.prevMonthOff)
			}
			if got := tt.ym.PrevYearDisabled(); got != tt.prevYearOff {
				t.Errorf("PrevYearDisabled() = %v, want %v", got, tt.prevYearOff)
			}
		})
	}
}
