package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/offbeam-labs/almanac/pkg/calendar"
	pkgdb "github.com/offbeam-labs/almanac/pkg/db"
	"github.com/offbeam-labs/almanac/pkg/utils"
)

// openDB resolves the database path (system default when --db is not
// given), opens the connection, and brings the schema up to date.
func openDB() (*sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, err
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}

// formatTimestamp converts a Unix timestamp (float64, seconds since epoch)
// to a human-readable string in RFC3339 format.
func formatTimestamp(timestamp float64) string {
	timeObj := time.Unix(int64(timestamp), 0)
	return timeObj.Format(time.RFC3339)
}

// parseDay parses a YYYY-MM-DD command-line argument.
func parseDay(raw string) (time.Time, error) {
	day, err := time.Parse(calendar.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s' (expected %s): %w", raw, calendar.DateLayout, err)
	}
	return day, nil
}

func printEvent(ev calendar.Event) {
	fmt.Println("Event Details:")
	fmt.Printf("ID:          %s\n", ev.ID)
	fmt.Printf("Name:        %s\n", ev.Name)
	fmt.Printf("Date:        %s\n", ev.Date.Format(calendar.DateLayout))
	fmt.Printf("Tag:         %s\n", ev.Tag)
	fmt.Printf("Repeats:     %s\n", ev.Recurrence)
	if ev.Description != "" {
		fmt.Printf("Description: %s\n", ev.Description)
	}
	fmt.Printf("Created At:  %s\n", formatTimestamp(ev.CreatedAt))
	fmt.Printf("Updated At:  %s\n", formatTimestamp(ev.UpdatedAt))
}

func printEventTable(events []calendar.Event) {
	fmt.Println("ID | Name | Date | Tag | Repeats")
	fmt.Println("------------------------------------------------------------")
	for _, ev := range events {
		fmt.Printf("%s | %s | %s | %s | %s\n",
			ev.ID, ev.Name, ev.Date.Format(calendar.DateLayout), ev.Tag, ev.Recurrence)
	}
}
