package transfer

import (
	"context"
	"database/sql"
	"strings"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

// csvHeader is the canonical 5-column layout. The format deliberately does
// no quoting or escaping: values are naive comma joins, matching the
// payloads this tool has always produced.
const csvHeader = "id,name,date,description,recurrence"

// DecodeCSV parses a CSV import payload. The header line must contain the
// literal id,name,date column prefix (ErrBadCSVHeader otherwise). Rows
// missing id, name or date are dropped silently and counted.
func DecodeCSV(data []byte) ([]calendar.Event, int, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var nonEmpty []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	if len(nonEmpty) == 0 || !strings.Contains(nonEmpty[0], "id,name,date") {
		return nil, 0, ErrBadCSVHeader
	}

	var events []calendar.Event
	skipped := 0
	for _, row := range nonEmpty[1:] {
		fields := strings.Split(row, ",")
		if len(fields) < 3 {
			skipped++
			continue
		}

		raw := rawEvent{ID: fields[0], Name: fields[1], Date: fields[2]}
		if len(fields) > 3 {
			raw.Description = fields[3]
		}
		if len(fields) > 4 {
			raw.Recurrence = fields[4]
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

// ImportCSV merges a CSV payload into the stored collection, with the same
// id-keyed last-write-wins semantics as ImportJSON.
func ImportCSV(ctx context.Context, db *sql.DB, data []byte) (ImportResult, error) {
	imported, skipped, err := DecodeCSV(data)
	if err != nil {
		return ImportResult{}, err
	}
	return mergeAndStore(ctx, db, imported, skipped)
}

// ExportCSV renders the collection in the 5-column layout. Embedded commas
// in names or descriptions are not escaped; the format is a plain join.
func ExportCSV(events []calendar.Event) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, ev := range events {
		raw := toRaw(ev)
		b.WriteString(strings.Join([]string{raw.ID, raw.Name, raw.Date, raw.Description, raw.Recurrence}, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
