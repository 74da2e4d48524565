package calendar

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrNameRequired      = errors.New("event name is required")
	ErrInvalidTag        = errors.New("invalid event tag")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrTagConflict       = errors.New("an event with the same tag already exists on this day")
)

const (
	insertEventStatement = `
	INSERT INTO events (id, name, date, description, tag, recurrence)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	getEventStatement = `
	SELECT id, name, date, description, tag, recurrence, created_at, updated_at
	FROM events
	WHERE id = ?
	`

	listEventsStatement = `
	SELECT id, name, date, description, tag, recurrence, created_at, updated_at
	FROM events
	ORDER BY date ASC, created_at ASC
	`

	updateEventStatement = `
	UPDATE events
	SET name = ?, date = ?, description = ?, tag = ?, recurrence = ?, updated_at = unixepoch()
	WHERE id = ?
	`

	deleteEventStatement = `
	DELETE FROM events
	WHERE id = ?
	`

	deleteAllEventsStatement = `
	DELETE FROM events
	`
)

// normalizeEvent validates the candidate's fields and fills defaults
// (fresh id, personal tag, none recurrence). Date is truncated to its
// calendar day.
func normalizeEvent(ev Event) (Event, error) {
	if ev.Name == "" {
		return Event{}, ErrNameRequired
	}

	tag, ok := ParseTag(string(ev.Tag))
	if !ok {
		return Event{}, ErrInvalidTag
	}
	ev.Tag = tag

	recurrence, ok := ParseRecurrence(string(ev.Recurrence))
	if !ok {
		return Event{}, ErrInvalidRecurrence
	}
	ev.Recurrence = recurrence

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	ev.Date = time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, ev.Date.Location())
	return ev, nil
}

// CreateEvent validates and stores a new event. A recurring template is
// materialized through the expander and every occurrence is stored as an
// independent record in one transaction; a non-recurring event is stored
// as-is. The candidate's anchor day is conflict-checked against the stored
// collection before anything is written; sibling occurrences of the same
// expansion are not cross-checked. Returns the stored records.
func CreateEvent(ctx context.Context, db *sql.DB, ev Event, horizon time.Time) ([]Event, error) {
	ev, err := normalizeEvent(ev)
	if err != nil {
		return nil, err
	}

	existing, err := ListEvents(ctx, db)
	if err != nil {
		return nil, err
	}
	if HasConflict(ev, existing) {
		return nil, ErrTagConflict
	}

	records := []Event{ev}
	if ev.Recurrence.IsRecurring() {
		records = Expand(ev, horizon)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, insertEventStatement,
			rec.ID, rec.Name, DayKey(rec.Date), rec.Description, string(rec.Tag), string(rec.Recurrence),
		); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stored := make([]Event, 0, len(records))
	for _, rec := range records {
		got, err := GetEvent(ctx, db, rec.ID)
		if err != nil {
			return nil, err
		}
		stored = append(stored, got)
	}
	return stored, nil
}

func scanEvent(scanner interface{ Scan(...any) error }) (Event, error) {
	var ev Event
	var date string
	var description sql.NullString
	var tag, recurrence string
	if err := scanner.Scan(&ev.ID, &ev.Name, &date, &description, &tag, &recurrence, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return Event{}, err
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return Event{}, err
	}
	ev.Date = parsed
	ev.Description = description.String
	ev.Tag = Tag(tag)
	ev.Recurrence = Recurrence(recurrence)
	return ev, nil
}

// GetEvent retrieves a single event by id.
func GetEvent(ctx context.Context, db *sql.DB, id uuid.UUID) (Event, error) {
	ev, err := scanEvent(db.QueryRowContext(ctx, getEventStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, err
	}
	return ev, nil
}

// ListEvents returns the whole stored collection, ascending by date.
func ListEvents(ctx context.Context, db *sql.DB) ([]Event, error) {
	rows, err := db.QueryContext(ctx, listEventsStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// UpdateEvent replaces the stored record with the given id. There is no
// partial patch: the caller supplies the full record. The replacement is
// conflict-checked against every other stored event.
func UpdateEvent(ctx context.Context, db *sql.DB, ev Event) (Event, error) {
	if _, err := GetEvent(ctx, db, ev.ID); err != nil {
		return Event{}, err
	}

	normalized, err := normalizeEvent(ev)
	if err != nil {
		return Event{}, err
	}

	existing, err := ListEvents(ctx, db)
	if err != nil {
		return Event{}, err
	}
	if HasConflict(normalized, existing) {
		return Event{}, ErrTagConflict
	}

	res, err := db.ExecContext(ctx, updateEventStatement,
		normalized.Name, DayKey(normalized.Date), normalized.Description,
		string(normalized.Tag), string(normalized.Recurrence), normalized.ID,
	)
	if err != nil {
		return Event{}, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return Event{}, err
	}
	if rowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return GetEvent(ctx, db, normalized.ID)
}

// DeleteEvent removes an event by id.
func DeleteEvent(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	res, err := db.ExecContext(ctx, deleteEventStatement, id)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ReplaceAllEvents overwrites the stored collection with the given one in a
// single transaction. The collection is the unit of persistence: every bulk
// mutation (such as an import merge) ends by writing the full snapshot.
func ReplaceAllEvents(ctx context.Context, db *sql.DB, events []Event) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllEventsStatement); err != nil {
		return err
	}
	for _, ev := range events {
		normalized, err := normalizeEvent(ev)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertEventStatement,
			normalized.ID, normalized.Name, DayKey(normalized.Date),
			normalized.Description, string(normalized.Tag), string(normalized.Recurrence),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
