package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

// DecodeJSON parses a JSON import payload. A payload that is not an array
// is a structural error (ErrNotArray); individual records that fail
// field validation are dropped silently and only counted.
func DecodeJSON(data []byte) ([]calendar.Event, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNotArray, err)
	}

	var events []calendar.Event
	skipped := 0
	for _, element := range elements {
		var raw rawEvent
		if err := json.Unmarshal(element, &raw); err != nil {
			skipped++
			continue
		}
		ev, ok := validateRecord(raw)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

// ImportJSON merges a JSON payload into the stored collection and writes
// the merged snapshot back. Merge is keyed by id with imported records
// winning, which makes repeated imports of the same payload idempotent.
func ImportJSON(ctx context.Context, db *sql.DB, data []byte) (ImportResult, error) {
	imported, skipped, err := DecodeJSON(data)
	if err != nil {
		return ImportResult{}, err
	}
	return mergeAndStore(ctx, db, imported, skipped)
}

// ExportJSON renders the collection as a pretty-printed JSON array.
func ExportJSON(events []calendar.Event) ([]byte, error) {
	raws := make([]rawEvent, 0, len(events))
	for _, ev := range events {
		raws = append(raws, toRaw(ev))
	}
	return json.MarshalIndent(raws, "", "  ")
}

func mergeAndStore(ctx context.Context, db *sql.DB, imported []calendar.Event, skipped int) (ImportResult, error) {
	existing, err := calendar.ListEvents(ctx, db)
	if err != nil {
		return ImportResult{}, err
	}

	merged := mergeByID(existing, imported)
	if err := calendar.ReplaceAllEvents(ctx, db, merged); err != nil {
		return ImportResult{}, err
	}

	return ImportResult{Imported: len(imported), Skipped: skipped}, nil
}
