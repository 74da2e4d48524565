package calendar

import (
	"testing"
	"time"
)

func TestEventsOn(t *testing.T) {
	events := []Event{
		testEvent(t, "One-off", day(2024, time.June, 5), RecurNone),
		testEvent(t, "Weekly", day(2024, time.May, 29), RecurWeekly),
		testEvent(t, "Monthly", day(2024, time.January, 5), RecurMonthly),
		testEvent(t, "Elsewhere", day(2024, time.June, 6), RecurNone),
	}

	got := EventsOn(day(2024, time.June, 5), events)
	if len(got) != 3 {
		t.Fatalf("Expected 3 events on June 5th, got %d", len(got))
	}
	// Collection order is preserved.
	if got[0].Name != "One-off" || got[1].Name != "Weekly" || got[2].Name != "Monthly" {
		t.Errorf("Expected insertion order to be preserved, got %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestUpcomingNonRecurringStrictness(t *testing.T) {
	ref := day(2024, time.June, 10)

	future := testEvent(t, "Future", day(2024, time.June, 11), RecurNone)
	today := testEvent(t, "Today", day(2024, time.June, 10), RecurNone)
	past := testEvent(t, "Past", day(2024, time.June, 9), RecurNone)

	got := Upcoming(ref, []Event{future, today, past})
	if len(got) != 1 || got[0].Name != "Future" {
		t.Fatalf("Expected only the strictly-future event to be upcoming, got %d events", len(got))
	}
}

func TestUpcomingRecurringKinds(t *testing.T) {
	ref := day(2024, time.June, 10)

	yearlyAhead := testEvent(t, "Yearly ahead", day(2000, time.December, 25), RecurYearly)
	yearlyPassed := testEvent(t, "Yearly passed", day(2000, time.February, 14), RecurYearly)
	monthlyAhead := testEvent(t, "Monthly ahead", day(2024, time.January, 20), RecurMonthly)
	monthlyPassed := testEvent(t, "Monthly passed", day(2024, time.January, 5), RecurMonthly)

	got := Upcoming(ref, []Event{yearlyAhead, yearlyPassed, monthlyAhead, monthlyPassed})
	if len(got) != 2 {
		t.Fatalf("Expected 2 upcoming events, got %d", len(got))
	}
	if got[0].Name != "Yearly ahead" || got[1].Name != "Monthly ahead" {
		t.Errorf("Expected the projected-ahead events, got %s and %s", got[0].Name, got[1].Name)
	}
}

func TestMarkedDays(t *testing.T) {
	ref := day(2024, time.June, 15)
	win := DefaultWindow(ref)

	events := []Event{
		testEvent(t, "One-off", day(2024, time.June, 20), RecurNone),
		testEvent(t, "Weekly", day(2024, time.June, 3), RecurWeekly),
		testEvent(t, "Monthly", day(2024, time.January, 9), RecurMonthly),
		testEvent(t, "Yearly", day(1990, time.June, 30), RecurYearly),
	}

	marked := MarkedDays(events, win)

	for _, want := range []string{
		"2024-06-20", // one-off anchor
		"2024-06-03", // weekly anchor
		"2024-06-24", // weekly step 3
		"2024-07-22", // weekly step 7
		"2024-06-09", // monthly projection into the window month
		"2023-06-30", // yearly, previous year
		"2024-06-30",
		"2025-06-30", // yearly, next year
	} {
		if _, ok := marked[want]; !ok {
			t.Errorf("Expected %s to be marked", want)
		}
	}

	if _, ok := marked["2024-06-25"]; ok {
		t.Errorf("Did not expect an unrelated day to be marked")
	}
	// 8 weekly steps only.
	if _, ok := marked["2024-07-29"]; ok {
		t.Errorf("Expected weekly markers to stop after %d steps", win.WeeklySteps)
	}
}

func TestMarkedDaysMonthlyOverflowSkipsMonth(t *testing.T) {
	ref := day(2024, time.April, 10) // April has 30 days
	ev := testEvent(t, "Month end", day(2024, time.January, 31), RecurMonthly)

	marked := MarkedDays([]Event{ev}, DefaultWindow(ref))
	if len(marked) != 0 {
		t.Errorf("Expected no marker in a month without the anchor day, got %v", marked)
	}
}

func TestInsertSorted(t *testing.T) {
	a := testEvent(t, "A", day(2024, time.June, 20), RecurNone)
	b := testEvent(t, "B", day(2024, time.June, 5), RecurNone)
	c := testEvent(t, "C", day(2024, time.June, 10), RecurNone)

	collection := InsertSorted(nil, a)
	collection = InsertSorted(collection, b)
	collection = InsertSorted(collection, c)

	if collection[0].Name != "B" || collection[1].Name != "C" || collection[2].Name != "A" {
		t.Errorf("Expected ascending date order B, C, A; got %s, %s, %s",
			collection[0].Name, collection[1].Name, collection[2].Name)
	}
}

func TestInsertSortedStableOnTies(t *testing.T) {
	first := testEvent(t, "First", day(2024, time.June, 5), RecurNone)
	second := testEvent(t, "Second", day(2024, time.June, 5), RecurNone)

	collection := InsertSorted(nil, first)
	collection = InsertSorted(collection, second)

	if collection[0].Name != "First" || collection[1].Name != "Second" {
		t.Errorf("Expected equal-date events to keep insertion order")
	}
}
