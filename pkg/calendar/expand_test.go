package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExpandDailyCappedAtFourteen(t *testing.T) {
	ev := testEvent(t, "Medication", day(2024, time.June, 1), RecurDaily)
	farFuture := day(2030, time.January, 1)

	occurrences := Expand(ev, farFuture)
	if len(occurrences) != DailyOccurrenceCap {
		t.Fatalf("Expected exactly %d daily occurrences regardless of horizon, got %d", DailyOccurrenceCap, len(occurrences))
	}

	for i, occ := range occurrences {
		want := ev.Date.AddDate(0, 0, i)
		if !SameDay(occ.Date, want) {
			t.Errorf("Occurrence %d: expected %s, got %s", i, want.Format(DateLayout), occ.Date.Format(DateLayout))
		}
	}
}

func TestExpandDailyShortHorizon(t *testing.T) {
	ev := testEvent(t, "Medication", day(2024, time.June, 1), RecurDaily)

	// Horizon tighter than the cap wins.
	occurrences := Expand(ev, day(2024, time.June, 5))
	if len(occurrences) != 5 {
		t.Errorf("Expected 5 occurrences up to an inclusive horizon, got %d", len(occurrences))
	}
}

func TestExpandWeekly(t *testing.T) {
	ev := testEvent(t, "Weekly sync", day(2024, time.June, 3), RecurWeekly)

	occurrences := Expand(ev, day(2024, time.July, 1))
	if len(occurrences) != 5 {
		t.Fatalf("Expected 5 weekly occurrences, got %d", len(occurrences))
	}
	last := occurrences[len(occurrences)-1]
	if !SameDay(last.Date, day(2024, time.July, 1)) {
		t.Errorf("Expected last occurrence on the inclusive horizon day, got %s", last.Date.Format(DateLayout))
	}
}

func TestExpandMonthlyAndYearlySteps(t *testing.T) {
	monthly := testEvent(t, "Rent", day(2024, time.January, 10), RecurMonthly)
	got := Expand(monthly, day(2024, time.December, 31))
	if len(got) != 12 {
		t.Errorf("Expected 12 monthly occurrences within the year, got %d", len(got))
	}

	yearly := testEvent(t, "Renewal", day(2024, time.February, 1), RecurYearly)
	got = Expand(yearly, day(2027, time.February, 1))
	if len(got) != 4 {
		t.Errorf("Expected 4 yearly occurrences over an inclusive 3-year horizon, got %d", len(got))
	}
}

func TestExpandNonRecurringEmitsNothing(t *testing.T) {
	ev := testEvent(t, "One-off", day(2024, time.June, 1), RecurNone)
	if got := Expand(ev, day(2030, time.January, 1)); len(got) != 0 {
		t.Errorf("Expected no occurrences for a non-recurring event, got %d", len(got))
	}
}

func TestExpandCopiesTemplateFields(t *testing.T) {
	ev := testEvent(t, "Yoga", day(2024, time.June, 1), RecurWeekly)
	ev.Description = "Morning class"
	ev.Tag = TagFun

	occurrences := Expand(ev, day(2024, time.June, 30))
	if len(occurrences) == 0 {
		t.Fatal("Expected at least one occurrence")
	}

	seen := map[uuid.UUID]bool{ev.ID: true}
	for _, occ := range occurrences {
		if occ.Name != ev.Name || occ.Description != ev.Description || occ.Tag != ev.Tag {
			t.Errorf("Occurrence did not copy the template's fields: %+v", occ)
		}
		// Materialized children keep the template's recurrence value.
		if occ.Recurrence != ev.Recurrence {
			t.Errorf("Expected occurrence to carry recurrence %s, got %s", ev.Recurrence, occ.Recurrence)
		}
		if seen[occ.ID] {
			t.Errorf("Occurrence ids must be freshly minted and unique, got duplicate %s", occ.ID)
		}
		seen[occ.ID] = true
	}
}

func TestExpansionGeneratorIsRestartable(t *testing.T) {
	ev := testEvent(t, "Weekly sync", day(2024, time.June, 3), RecurWeekly)
	horizon := day(2024, time.August, 1)

	first := Expand(ev, horizon)
	second := Expand(ev, horizon)

	if len(first) != len(second) {
		t.Fatalf("Expected restart from identical inputs to emit the same count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !SameDay(first[i].Date, second[i].Date) {
			t.Errorf("Occurrence %d differs between runs: %s vs %s", i, first[i].Date.Format(DateLayout), second[i].Date.Format(DateLayout))
		}
	}
}

func TestExpansionNextExhaustion(t *testing.T) {
	ev := testEvent(t, "Weekly sync", day(2024, time.June, 3), RecurWeekly)
	x := NewExpansion(ev, day(2024, time.June, 10))

	if _, ok := x.Next(); !ok {
		t.Fatal("Expected first occurrence")
	}
	if _, ok := x.Next(); !ok {
		t.Fatal("Expected second occurrence")
	}
	if _, ok := x.Next(); ok {
		t.Error("Expected generator to be exhausted past the horizon")
	}
	// Exhaustion is stable.
	if _, ok := x.Next(); ok {
		t.Error("Expected exhausted generator to stay exhausted")
	}
}
