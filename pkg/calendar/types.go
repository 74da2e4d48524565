package calendar

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical day-granularity date format used everywhere
// an event date crosses a boundary (storage, import/export, CLI flags).
const DateLayout = "2006-01-02"

// Recurrence describes how an event repeats relative to its anchor date.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// ParseRecurrence normalizes a recurrence string. The empty string and the
// legacy "no" spelling both map to RecurNone. Unknown values are rejected.
func ParseRecurrence(s string) (Recurrence, bool) {
	switch Recurrence(s) {
	case "", "no", RecurNone:
		return RecurNone, true
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return Recurrence(s), true
	}
	return RecurNone, false
}

// IsRecurring reports whether the recurrence denotes a repeating series.
func (r Recurrence) IsRecurring() bool {
	return r == RecurDaily || r == RecurWeekly || r == RecurMonthly || r == RecurYearly
}

// Tag classifies an event. Tags are only consulted for same-day conflict
// detection; they carry no other semantics.
type Tag string

const (
	TagPersonal Tag = "personal"
	TagBirthday Tag = "birthday"
	TagWork     Tag = "work"
	TagReminder Tag = "reminder"
	TagFun      Tag = "fun"
)

// ParseTag normalizes a tag string. The empty string maps to TagPersonal.
func ParseTag(s string) (Tag, bool) {
	switch Tag(s) {
	case "":
		return TagPersonal, true
	case TagPersonal, TagBirthday, TagWork, TagReminder, TagFun:
		return Tag(s), true
	}
	return TagPersonal, false
}

// Event is the single persisted entity of the calendar. For non-recurring
// events Date is the occurrence day; for recurring events it is the anchor
// of the series. Only the calendar day of Date is meaningful.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description,omitempty"`
	Tag         Tag        `json:"tag,omitempty"`
	Recurrence  Recurrence `json:"recurrence,omitempty"`
	CreatedAt   float64    `json:"created_at,omitempty"`
	UpdatedAt   float64    `json:"updated_at,omitempty"`
}

// SameDay reports whether a and b fall on the same calendar day. All event
// matching is done at day granularity; time components are ignored.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey returns the canonical string key for the calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// daysBetween returns the whole-day difference between the calendar days of
// a and b (positive when b is later). Days are counted on day boundaries in
// UTC so DST transitions cannot produce fractional days.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
