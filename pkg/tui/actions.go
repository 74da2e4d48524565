package tui

import (
	"context"
	"database/sql"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

// eventsLoadedMsg carries a fresh snapshot of the stored collection.
type eventsLoadedMsg []calendar.Event

// conflictMsg reports a rejected save so the form can surface it without
// tearing down the program.
type conflictMsg struct{ reason string }

// Load every stored event and return tea data
func loadEvents(db *sql.DB) tea.Cmd {
	return func() tea.Msg {
		events, err := calendar.ListEvents(context.Background(), db)
		if err != nil {
			return err
		}
		return eventsLoadedMsg(events)
	}
}

// Persist a new event (materializing recurring occurrences) and reload
func createEvent(db *sql.DB, ev calendar.Event) tea.Cmd {
	return func() tea.Msg {
		_, err := calendar.CreateEvent(context.Background(), db, ev, calendar.DefaultHorizon(ev.Date))
		if errors.Is(err, calendar.ErrTagConflict) {
			return conflictMsg{reason: "An event with this tag already exists on that day."}
		}
		if err != nil {
			return err
		}
		events, err := calendar.ListEvents(context.Background(), db)
		if err != nil {
			return err
		}
		return eventsLoadedMsg(events)
	}
}

// Delete a single event and reload
func deleteEvent(db *sql.DB, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := calendar.DeleteEvent(context.Background(), db, id); err != nil {
			return err
		}
		events, err := calendar.ListEvents(context.Background(), db)
		if err != nil {
			return err
		}
		return eventsLoadedMsg(events)
	}
}

// Get database name and file path
func getDbPragmaList(db *sql.DB) (string, string) {
	var name, file string
	err := db.QueryRow(`PRAGMA database_list`).Scan(new(int), &name, &file)
	if err != nil {
		return name, file
	}
	return name, file
}
