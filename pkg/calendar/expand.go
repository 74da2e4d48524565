package calendar

import (
	"time"

	"github.com/google/uuid"
)

// DailyOccurrenceCap bounds how many occurrences a daily series ever
// materializes, regardless of horizon. Daily is the only kind with a count
// cap; the other kinds are bounded by the horizon alone.
const DailyOccurrenceCap = 14

// DefaultHorizon returns the conventional expansion horizon: one year after
// the reference date.
func DefaultHorizon(ref time.Time) time.Time {
	return ref.AddDate(1, 0, 0)
}

// Expansion is a bounded generator of concrete occurrences for one
// recurring template. It walks a cursor from the anchor date towards the
// horizon, stepping by the recurrence period, and stops at the horizon or
// at the occurrence cap, whichever comes first. Restarting from the same
// (event, horizon) inputs yields the same occurrence days; only the minted
// ids differ.
type Expansion struct {
	template Event
	cursor   time.Time
	horizon  time.Time
	step     func(time.Time) time.Time
	maxCount int
	emitted  int
}

// NewExpansion prepares an expansion of ev up to and including horizon.
// A non-recurring event produces an exhausted generator: materialization is
// only meaningful for repeating templates.
func NewExpansion(ev Event, horizon time.Time) *Expansion {
	x := &Expansion{
		template: ev,
		cursor:   ev.Date,
		horizon:  horizon,
	}
	switch ev.Recurrence {
	case RecurDaily:
		x.step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		x.maxCount = DailyOccurrenceCap
	case RecurWeekly:
		x.step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case RecurMonthly:
		x.step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	case RecurYearly:
		x.step = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
	}
	return x
}

// Next emits the next occurrence, or false when the series is exhausted.
// Each occurrence is an independent record: fresh id, occurrence-specific
// date, and the template's name, description, tag and recurrence value
// copied verbatim.
func (x *Expansion) Next() (Event, bool) {
	if x.step == nil {
		return Event{}, false
	}
	if x.cursor.After(x.horizon) {
		return Event{}, false
	}
	if x.maxCount > 0 && x.emitted >= x.maxCount {
		return Event{}, false
	}

	occ := x.template
	occ.ID = uuid.New()
	occ.Date = x.cursor

	x.cursor = x.step(x.cursor)
	x.emitted++
	return occ, true
}

// Expand materializes every occurrence of ev up to horizon.
func Expand(ev Event, horizon time.Time) []Event {
	var out []Event
	x := NewExpansion(ev, horizon)
	for {
		occ, ok := x.Next()
		if !ok {
			return out
		}
		out = append(out, occ)
	}
}
