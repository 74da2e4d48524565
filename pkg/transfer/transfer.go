// Package transfer implements the import/export boundary of the event
// collection: JSON and CSV codecs, per-record validation, and the
// id-keyed merge into the stored collection.
package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/offbeam-labs/almanac/pkg/calendar"
)

var (
	// ErrNotArray reports a structural import failure: the payload is not
	// a JSON array. Nothing is imported.
	ErrNotArray = errors.New("import payload is not an array")
	// ErrBadCSVHeader reports a CSV payload whose header line does not
	// carry the expected id,name,date columns. Nothing is imported.
	ErrBadCSVHeader = errors.New("csv header does not contain id,name,date")
)

// ImportResult is the one summary surfaced for an import. Individual
// rejected records are counted, not reported.
type ImportResult struct {
	Imported int
	Skipped  int
}

// rawEvent is the wire shape shared by the JSON and CSV codecs.
type rawEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"`
}

// dateLayouts lists the accepted spellings of an event date on the wire.
var dateLayouts = []string{calendar.DateLayout, time.RFC3339}

// validateRecord turns a wire record into a well-formed Event, or rejects
// it. Nothing partially-validated ever flows past this function.
func validateRecord(raw rawEvent) (calendar.Event, bool) {
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return calendar.Event{}, false
	}
	if raw.Name == "" {
		return calendar.Event{}, false
	}

	var date time.Time
	parsed := false
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw.Date); err == nil {
			date = d
			parsed = true
			break
		}
	}
	if !parsed {
		return calendar.Event{}, false
	}

	tag, ok := calendar.ParseTag(raw.Tag)
	if !ok {
		return calendar.Event{}, false
	}
	recurrence, ok := calendar.ParseRecurrence(raw.Recurrence)
	if !ok {
		return calendar.Event{}, false
	}

	return calendar.Event{
		ID:          id,
		Name:        raw.Name,
		Date:        date,
		Description: raw.Description,
		Tag:         tag,
		Recurrence:  recurrence,
	}, true
}

func toRaw(ev calendar.Event) rawEvent {
	return rawEvent{
		ID:          ev.ID.String(),
		Name:        ev.Name,
		Date:        calendar.DayKey(ev.Date),
		Description: ev.Description,
		Tag:         string(ev.Tag),
		Recurrence:  string(ev.Recurrence),
	}
}

// mergeByID unions imported records into the existing collection keyed by
// id. Existing order is preserved; an imported record with a known id
// replaces the stored one in place (imported wins), unknown ids append in
// import order.
func mergeByID(existing, imported []calendar.Event) []calendar.Event {
	merged := make([]calendar.Event, 0, len(existing)+len(imported))
	index := make(map[uuid.UUID]int, len(existing))

	for _, ev := range existing {
		index[ev.ID] = len(merged)
		merged = append(merged, ev)
	}
	for _, ev := range imported {
		if i, ok := index[ev.ID]; ok {
			merged[i] = ev
			continue
		}
		index[ev.ID] = len(merged)
		merged = append(merged, ev)
	}
	return merged
}

// FilterByHorizon restricts the collection to events between ref and ref
// plus the given number of months, inclusive. months <= 0 means no
// horizon: the whole collection is kept.
func FilterByHorizon(events []calendar.Event, ref time.Time, months int) []calendar.Event {
	if months <= 0 {
		return events
	}
	end := ref.AddDate(0, months, 0)
	var out []calendar.Event
	for _, ev := range events {
		if ev.Date.Before(ref) || ev.Date.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
