package calendar

import (
	"sort"
	"time"
)

// EventsOn filters the collection down to the events occurring on the
// calendar day of ref, preserving the collection's order.
func EventsOn(ref time.Time, events []Event) []Event {
	var out []Event
	for _, ev := range events {
		if OccursOn(ev, ref) {
			out = append(out, ev)
		}
	}
	return out
}

// Upcoming selects the events whose next occurrence is strictly after ref.
// An occurrence on the reference day itself is not upcoming.
func Upcoming(ref time.Time, events []Event) []Event {
	var out []Event
	for _, ev := range events {
		if _, ok := NextOccurrence(ev, ref); ok {
			out = append(out, ev)
		}
	}
	return out
}

// DisplayWindow describes the slice of the calendar a view is decorating.
// Ref anchors the visible month; WeeklySteps and YearSpan bound how far
// weekly and yearly series are projected for markers.
type DisplayWindow struct {
	Ref         time.Time
	WeeklySteps int
	YearSpan    int
}

// DefaultWindow returns the marker window used by the dashboard: the month
// of ref, 8 weekly steps, and one year to each side for yearly events.
func DefaultWindow(ref time.Time) DisplayWindow {
	return DisplayWindow{Ref: ref, WeeklySteps: 8, YearSpan: 1}
}

// MarkedDays computes the set of calendar days (as DayKey strings) that
// should carry an event marker within the window. The projection is
// intentionally shallow; it decorates calendar cells and never touches
// stored state:
//
//   - yearly: the anchor's month/day in each year of the window span.
//   - monthly: the anchor's day-of-month within the window's month.
//   - weekly: WeeklySteps occurrences walking forward from the anchor.
//   - none/daily: the record's own day.
func MarkedDays(events []Event, win DisplayWindow) map[string]struct{} {
	marked := make(map[string]struct{})
	for _, ev := range events {
		switch ev.Recurrence {
		case RecurYearly:
			for year := win.Ref.Year() - win.YearSpan; year <= win.Ref.Year()+win.YearSpan; year++ {
				day := time.Date(year, ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, win.Ref.Location())
				marked[DayKey(day)] = struct{}{}
			}
		case RecurMonthly:
			day := time.Date(win.Ref.Year(), win.Ref.Month(), ev.Date.Day(), 0, 0, 0, 0, win.Ref.Location())
			// Day-of-month overflow (31st in a 30-day month) rolls into the
			// next month; such months get no marker.
			if day.Month() == win.Ref.Month() {
				marked[DayKey(day)] = struct{}{}
			}
		case RecurWeekly:
			for i := 0; i < win.WeeklySteps; i++ {
				marked[DayKey(ev.Date.AddDate(0, 0, 7*i))] = struct{}{}
			}
		default:
			marked[DayKey(ev.Date)] = struct{}{}
		}
	}
	return marked
}

// InsertSorted appends ev and re-sorts the collection ascending by date.
// The sort is stable, so events sharing a day keep their insertion order.
func InsertSorted(events []Event, ev Event) []Event {
	out := append(events, ev)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
