package db

const (
	// SchemaV1 defines version 1 of the calendar database schema.
	//
	// The events table is the unit of persistence: mutations replace whole
	// rows, and bulk operations overwrite the table as one snapshot. The
	// notifications table is the reminder-throttle side table keyed by
	// (event_id, date).
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS almanac_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY,
    name VARCHAR(256) NOT NULL,
    date TEXT NOT NULL,
    description TEXT,
    tag VARCHAR(64) NOT NULL DEFAULT 'personal',
    recurrence VARCHAR(16) NOT NULL DEFAULT 'none',
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);

CREATE TABLE IF NOT EXISTS notifications (
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    notified_at REAL NOT NULL,
    PRIMARY KEY (event_id, date)
);
`
)
