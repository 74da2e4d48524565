package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/offbeam-labs/almanac/pkg/calendar"
)

func TestExportEmptyCollection(t *testing.T) {
	out, err := Export(nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc := string(out)
	if !strings.Contains(doc, "BEGIN:VCALENDAR") || !strings.Contains(doc, "END:VCALENDAR") {
		t.Errorf("Expected a VCALENDAR wrapper, got:\n%s", doc)
	}
	if !strings.Contains(doc, "VERSION:2.0") {
		t.Errorf("Expected VERSION:2.0, got:\n%s", doc)
	}
	if strings.Contains(doc, "BEGIN:VEVENT") {
		t.Errorf("Expected no VEVENT components for an empty collection")
	}
}

func TestExportSingleEvent(t *testing.T) {
	id := uuid.New()
	events := []calendar.Event{{
		ID:          id,
		Name:        "Dentist",
		Date:        time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
		Description: "Annual checkup",
		Tag:         calendar.TagPersonal,
		Recurrence:  calendar.RecurNone,
	}}

	out, err := Export(events)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc := string(out)
	for _, want := range []string{
		"BEGIN:VEVENT",
		"UID:" + id.String(),
		"SUMMARY:Dentist",
		"DTSTART:20240605T000000Z",
		"DESCRIPTION:Annual checkup",
		"CATEGORIES:personal",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Expected %q in the document, got:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "RRULE") {
		t.Errorf("Expected no RRULE for a non-recurring event")
	}
}

func TestExportRecurrenceRules(t *testing.T) {
	cases := []struct {
		recurrence calendar.Recurrence
		want       string
	}{
		{calendar.RecurDaily, "RRULE:FREQ=DAILY;COUNT=14"},
		{calendar.RecurWeekly, "RRULE:FREQ=WEEKLY"},
		{calendar.RecurMonthly, "RRULE:FREQ=MONTHLY"},
		{calendar.RecurYearly, "RRULE:FREQ=YEARLY"},
	}

	for _, tc := range cases {
		events := []calendar.Event{{
			ID:         uuid.New(),
			Name:       "Recurring",
			Date:       time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
			Tag:        calendar.TagWork,
			Recurrence: tc.recurrence,
		}}

		out, err := Export(events)
		if err != nil {
			t.Fatalf("Export failed for %s: %v", tc.recurrence, err)
		}
		if !strings.Contains(string(out), tc.want) {
			t.Errorf("Expected %q for %s recurrence, got:\n%s", tc.want, tc.recurrence, string(out))
		}
	}
}
