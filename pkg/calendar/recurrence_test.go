package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testEvent(t *testing.T, name string, date time.Time, recurrence Recurrence) Event {
	t.Helper()
	return Event{
		ID:         uuid.New(),
		Name:       name,
		Date:       date,
		Tag:        TagPersonal,
		Recurrence: recurrence,
	}
}

func TestOccursOnNonRecurring(t *testing.T) {
	ev := testEvent(t, "Dentist", day(2024, time.June, 5), RecurNone)

	if !OccursOn(ev, day(2024, time.June, 5)) {
		t.Errorf("Expected event to occur on its own date")
	}
	if OccursOn(ev, day(2024, time.June, 6)) {
		t.Errorf("Expected event not to occur on the following day")
	}
	if OccursOn(ev, day(2025, time.June, 5)) {
		t.Errorf("Expected event not to occur on the same day of another year")
	}

	// Time-of-day must be irrelevant: matching is by calendar day.
	afternoon := time.Date(2024, time.June, 5, 15, 30, 0, 0, time.UTC)
	if !OccursOn(ev, afternoon) {
		t.Errorf("Expected day-granularity match to ignore time of day")
	}
}

func TestOccursOnIsPure(t *testing.T) {
	ev := testEvent(t, "Standup", day(2024, time.March, 4), RecurWeekly)
	ref := day(2024, time.March, 25)

	first := OccursOn(ev, ref)
	for i := 0; i < 10; i++ {
		if OccursOn(ev, ref) != first {
			t.Fatalf("OccursOn returned different results for identical arguments")
		}
	}
}

func TestOccursOnAnchorInclusion(t *testing.T) {
	anchor := day(2024, time.May, 17)
	for _, recurrence := range []Recurrence{RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly} {
		ev := testEvent(t, "Anchor", anchor, recurrence)
		if !OccursOn(ev, anchor) {
			t.Errorf("Recurrence %s: expected anchor day to match its own series", recurrence)
		}
	}
}

func TestOccursOnWeeklyPeriodicity(t *testing.T) {
	anchor := day(2024, time.January, 1) // a Monday
	ev := testEvent(t, "Weekly sync", anchor, RecurWeekly)

	for k := 0; k < 60; k++ {
		on := anchor.AddDate(0, 0, 7*k)
		if !OccursOn(ev, on) {
			t.Errorf("Expected weekly event to occur %d weeks after anchor (%s)", k, on.Format(DateLayout))
		}
		for r := 1; r < 7; r++ {
			off := anchor.AddDate(0, 0, 7*k+r)
			if OccursOn(ev, off) {
				t.Errorf("Expected weekly event not to occur %d days after anchor", 7*k+r)
			}
		}
	}

	// Days before the anchor never match, even on the 7-day lattice.
	if OccursOn(ev, anchor.AddDate(0, 0, -7)) {
		t.Errorf("Expected weekly event not to occur before its anchor date")
	}
}

func TestOccursOnWeeklyAcrossDSTBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Anchor before the March 2024 DST transition; 7*2 days later crosses it.
	anchor := time.Date(2024, time.March, 4, 0, 0, 0, 0, loc)
	ev := testEvent(t, "Across DST", anchor, RecurWeekly)

	after := time.Date(2024, time.March, 18, 0, 0, 0, 0, loc)
	if !OccursOn(ev, after) {
		t.Errorf("Expected weekly match to survive a DST transition")
	}
}

func TestOccursOnMonthly(t *testing.T) {
	ev := testEvent(t, "Rent", day(2024, time.January, 15), RecurMonthly)

	if !OccursOn(ev, day(2024, time.February, 15)) {
		t.Errorf("Expected monthly event to occur on the 15th of February")
	}
	if !OccursOn(ev, day(2031, time.November, 15)) {
		t.Errorf("Expected monthly event to occur on the 15th years later")
	}
	if OccursOn(ev, day(2024, time.February, 14)) {
		t.Errorf("Expected monthly event not to occur on the 14th")
	}
}

func TestOccursOnMonthlyDay31Boundary(t *testing.T) {
	ev := testEvent(t, "Month end", day(2024, time.January, 31), RecurMonthly)

	// April has 30 days: no day matches that cycle, and nothing panics.
	for d := 1; d <= 30; d++ {
		if OccursOn(ev, day(2024, time.April, d)) {
			t.Errorf("Expected no match in April for a day-31 anchor, got match on day %d", d)
		}
	}
	if !OccursOn(ev, day(2024, time.May, 31)) {
		t.Errorf("Expected day-31 anchor to match May 31st")
	}
}

func TestOccursOnYearly(t *testing.T) {
	ev := testEvent(t, "Birthday", day(1990, time.July, 22), RecurYearly)

	if !OccursOn(ev, day(2024, time.July, 22)) {
		t.Errorf("Expected yearly event to occur on the anchor month/day in any year")
	}
	if OccursOn(ev, day(2024, time.July, 23)) {
		t.Errorf("Expected yearly event not to occur a day later")
	}
	if OccursOn(ev, day(2024, time.August, 22)) {
		t.Errorf("Expected yearly event not to occur in another month")
	}
}

func TestNextOccurrenceNonRecurring(t *testing.T) {
	ev := testEvent(t, "One-off", day(2024, time.June, 10), RecurNone)

	if next, ok := NextOccurrence(ev, day(2024, time.June, 5)); !ok || !SameDay(next, ev.Date) {
		t.Errorf("Expected the anchor to be the next occurrence for a future one-off")
	}
	// Strictly-after: the reference day itself does not count as upcoming.
	if _, ok := NextOccurrence(ev, day(2024, time.June, 10)); ok {
		t.Errorf("Expected no upcoming occurrence when the event is on the reference day")
	}
	if _, ok := NextOccurrence(ev, day(2024, time.June, 11)); ok {
		t.Errorf("Expected no upcoming occurrence for a past one-off")
	}
}

func TestNextOccurrenceYearlyProjection(t *testing.T) {
	ev := testEvent(t, "Anniversary", day(2020, time.September, 10), RecurYearly)

	next, ok := NextOccurrence(ev, day(2024, time.March, 1))
	if !ok {
		t.Fatalf("Expected an upcoming yearly occurrence before the projected day")
	}
	if !SameDay(next, day(2024, time.September, 10)) {
		t.Errorf("Expected projection into the reference year, got %s", next.Format(DateLayout))
	}

	// Once the projected day has passed, the event is not upcoming this year.
	if _, ok := NextOccurrence(ev, day(2024, time.October, 1)); ok {
		t.Errorf("Expected no upcoming occurrence after the projected day this year")
	}
}

func TestNextOccurrenceMonthlyProjection(t *testing.T) {
	ev := testEvent(t, "Payday", day(2024, time.January, 25), RecurMonthly)

	next, ok := NextOccurrence(ev, day(2024, time.June, 10))
	if !ok {
		t.Fatalf("Expected an upcoming monthly occurrence before the 25th")
	}
	if !SameDay(next, day(2024, time.June, 25)) {
		t.Errorf("Expected projection into the reference month, got %s", next.Format(DateLayout))
	}

	if _, ok := NextOccurrence(ev, day(2024, time.June, 26)); ok {
		t.Errorf("Expected no upcoming occurrence after the projected day this month")
	}
}

func TestNextOccurrenceWeekly(t *testing.T) {
	anchor := day(2024, time.August, 5)
	ev := testEvent(t, "Lesson", anchor, RecurWeekly)

	// Anchor in the future and on the 7-day lattice relative to ref.
	if _, ok := NextOccurrence(ev, anchor.AddDate(0, 0, -7)); !ok {
		t.Errorf("Expected a future aligned weekly anchor to be upcoming")
	}
	// Off-lattice reference days do not see the series as upcoming.
	if _, ok := NextOccurrence(ev, anchor.AddDate(0, 0, -3)); ok {
		t.Errorf("Expected an off-lattice reference day not to be upcoming")
	}
	// Past anchors are not reported as upcoming.
	if _, ok := NextOccurrence(ev, anchor.AddDate(0, 0, 7)); ok {
		t.Errorf("Expected a past weekly anchor not to be upcoming")
	}
}
