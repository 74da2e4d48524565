// Package notify decides which events are due for a reminder on a given
// day. Reminders are throttled through the notifications side table so a
// long-running watcher does not nag about the same event repeatedly.
package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/offbeam-labs/almanac/pkg/calendar"
)

// ThrottleWindow is the minimum gap between two reminders for the same
// event on the same day.
const ThrottleWindow = time.Hour

const (
	getNotificationSQL = `
        SELECT notified_at FROM notifications
        WHERE event_id = ? AND date = ?;`

	markNotifiedSQL = `
        INSERT INTO notifications (event_id, date, notified_at)
        VALUES (?, ?, ?)
        ON CONFLICT (event_id, date) DO UPDATE SET notified_at = excluded.notified_at;`
)

// DueEvents returns every stored event whose recurrence matches the
// reference day, throttling aside.
func DueEvents(ctx context.Context, db *sql.DB, ref time.Time) ([]calendar.Event, error) {
	all, err := calendar.ListEvents(ctx, db)
	if err != nil {
		return nil, err
	}
	return calendar.EventsOn(ref, all), nil
}

// ShouldNotify reports whether a reminder for the event on the reference
// day is outside the throttle window. Unknown (event, day) pairs have
// never been notified and are always due.
func ShouldNotify(ctx context.Context, db *sql.DB, eventID uuid.UUID, ref time.Time) (bool, error) {
	var notifiedAt float64
	err := db.QueryRowContext(ctx, getNotificationSQL, eventID, calendar.DayKey(ref)).Scan(&notifiedAt)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read notification state: %w", err)
	}

	last := time.Unix(int64(notifiedAt), 0)
	return ref.Sub(last) >= ThrottleWindow, nil
}

// MarkNotified records that a reminder for the event fired on the
// reference day.
func MarkNotified(ctx context.Context, db *sql.DB, eventID uuid.UUID, ref time.Time) error {
	_, err := db.ExecContext(ctx, markNotifiedSQL, eventID, calendar.DayKey(ref), float64(ref.Unix()))
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// Pending returns the due events that are also outside their throttle
// window, in stored order.
func Pending(ctx context.Context, db *sql.DB, ref time.Time) ([]calendar.Event, error) {
	due, err := DueEvents(ctx, db, ref)
	if err != nil {
		return nil, err
	}

	var pending []calendar.Event
	for _, ev := range due {
		ok, err := ShouldNotify(ctx, db, ev.ID, ref)
		if err != nil {
			return nil, err
		}
		if ok {
			pending = append(pending, ev)
		}
	}
	return pending, nil
}
