package ics

import (
	"time"

	"github.com/teambition/rrule-go"
)

// Cap on occurrences per recurring event to bound unbounded rules
const maxOccurrencesPerEvent = 1000

// Occurrence is one concrete dated instance of an event
type Occurrence struct {
	Date  time.Time
	Title string
	Notes string
}

// Expand turns parsed events into concrete occurrences within [from, to].
// Non-recurring events contribute their start date; RRULE events are
// expanded with EXDATEs applied.
func Expand(events []ParsedEvent, from, to time.Time) []Occurrence {
	out := make([]Occurrence, 0)
	if to.Before(from) {
		return out
	}

	for _, ev := range events {
		if ev.RawRRule == "" {
			if !ev.Start.Before(from) && !ev.Start.After(to) {
				out = append(out, occurrenceAt(ev, ev.Start))
			}
			continue
		}
		out = append(out, expandRecurring(ev, from, to)...)
	}
	return out
}

func expandRecurring(ev ParsedEvent, from, to time.Time) []Occurrence {
	out := make([]Occurrence, 0)

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		// Unparseable rule, fall back to the base date
		if !ev.Start.Before(from) && !ev.Start.After(to) {
			out = append(out, occurrenceAt(ev, ev.Start))
		}
		return out
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	occTimes := set.Between(from.In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(occTimes) > maxOccurrencesPerEvent {
		occTimes = occTimes[:maxOccurrencesPerEvent]
	}

	for _, t := range occTimes {
		out = append(out, occurrenceAt(ev, t))
	}
	return out
}

func occurrenceAt(ev ParsedEvent, t time.Time) Occurrence {
	return Occurrence{
		Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Title: ev.Summary,
		Notes: ev.Notes,
	}
}
