package calendar

import "time"

// OccursOn reports whether the event occurs on the calendar day of ref.
// Matching is a pure function of (ev, ref) at day granularity:
//
//   - none/daily: the anchor day itself. Daily series are materialized into
//     independent records at save time, so each stored record matches only
//     its own day.
//   - yearly: same month and day-of-month, any year.
//   - monthly: same day-of-month, any month. A day-of-month that does not
//     exist in a given month simply never matches that cycle; no rounding.
//   - weekly: ref is a whole non-negative multiple of 7 days after the
//     anchor. Days before the anchor never match.
func OccursOn(ev Event, ref time.Time) bool {
	switch ev.Recurrence {
	case RecurYearly:
		return ev.Date.Day() == ref.Day() && ev.Date.Month() == ref.Month()
	case RecurMonthly:
		return ev.Date.Day() == ref.Day()
	case RecurWeekly:
		d := daysBetween(ev.Date, ref)
		return d >= 0 && d%7 == 0
	default:
		return SameDay(ev.Date, ref)
	}
}

// NextOccurrence computes the event's next occurrence strictly after ref,
// using the same per-kind arithmetic as OccursOn. The boolean is false when
// no occurrence strictly after ref exists within the kind's projection
// window:
//
//   - none/daily: the anchor itself, if still in the future.
//   - yearly: the anchor's month/day projected into ref's year.
//   - monthly: the anchor's day-of-month projected into ref's month.
//   - weekly: the anchor, if it lies in the future on the 7-day lattice.
//
// Yearly and monthly projections deliberately do not roll over into the
// next year/month; an event whose projected day has already passed is not
// upcoming until the window advances.
func NextOccurrence(ev Event, ref time.Time) (time.Time, bool) {
	switch ev.Recurrence {
	case RecurYearly:
		next := time.Date(ref.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, ref.Location())
		return next, next.After(ref)
	case RecurMonthly:
		next := time.Date(ref.Year(), ref.Month(), ev.Date.Day(), 0, 0, 0, 0, ref.Location())
		return next, next.After(ref)
	case RecurWeekly:
		d := daysBetween(ev.Date, ref)
		if d < 0 {
			d = -d
		}
		return ev.Date, d%7 == 0 && ev.Date.After(ref)
	default:
		return ev.Date, ev.Date.After(ref)
	}
}
