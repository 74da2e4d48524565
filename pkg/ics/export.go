// Package ics renders the event collection as an iCalendar (RFC 5545)
// document so other calendar clients can consume it.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

const productID = "-//offbeam-labs//almanac//EN"

// Export encodes the collection as a VCALENDAR with one VEVENT per record.
// A record's recurrence marker is carried as an RRULE so that consuming
// clients reproduce the cadence, with the daily cadence capped the same way
// the expander caps it.
func Export(events []calendar.Event) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, ev := range events {
		ve, err := toVEvent(ev, now)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event %s: %w", ev.ID, err)
		}
		cal.Children = append(cal.Children, ve)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func toVEvent(ev calendar.Event, now time.Time) (*ical.Component, error) {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, ev.ID.String())
	ve.Props.SetText(ical.PropSummary, ev.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now)
	ve.Props.SetDateTime(ical.PropDateTimeStart, ev.Date.UTC())

	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Tag != "" {
		ve.Props.SetText(ical.PropCategories, string(ev.Tag))
	}

	if ev.Recurrence.IsRecurring() {
		rule, err := recurrenceRule(ev.Recurrence)
		if err != nil {
			return nil, err
		}
		p := ical.NewProp(ical.PropRecurrenceRule)
		p.Value = rule.String()
		ve.Props.Set(p)
	}
	return ve, nil
}

// recurrenceRule maps a recurrence marker to a validated RRULE.
func recurrenceRule(r calendar.Recurrence) (*rrule.RRule, error) {
	opt := rrule.ROption{}
	switch r {
	case calendar.RecurDaily:
		opt.Freq = rrule.DAILY
		opt.Count = calendar.DailyOccurrenceCap
	case calendar.RecurWeekly:
		opt.Freq = rrule.WEEKLY
	case calendar.RecurMonthly:
		opt.Freq = rrule.MONTHLY
	case calendar.RecurYearly:
		opt.Freq = rrule.YEARLY
	default:
		return nil, fmt.Errorf("no recurrence rule for %q", r)
	}
	return rrule.NewRRule(opt)
}
