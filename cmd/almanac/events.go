package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

var (
	dateFlag       string
	descFlag       string
	tagFlag        string
	recurrenceFlag string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage calendar events",
	Long:  `Create, list, update, and delete calendar events.`,
}

var createEventCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new event",
	Long: `Create a new event on the given date. Recurring events are materialized
as independent records up to one year out; daily events cap at 14 occurrences.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(dateFlag)
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ev := calendar.Event{
			Name:        args[0],
			Date:        date,
			Description: descFlag,
			Tag:         calendar.Tag(tagFlag),
			Recurrence:  calendar.Recurrence(recurrenceFlag),
		}

		stored, err := calendar.CreateEvent(cmd.Context(), dbConn, ev, calendar.DefaultHorizon(date))
		if errors.Is(err, calendar.ErrTagConflict) {
			return fmt.Errorf("an event tagged '%s' already exists on %s", ev.Tag, dateFlag)
		}
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		if len(stored) > 1 {
			fmt.Printf("Created %d occurrences:\n\n", len(stored))
			printEventTable(stored)
			return nil
		}
		printEvent(stored[0])
		return nil
	},
}

var getEventCmd = &cobra.Command{
	Use:   "get [event-id]",
	Short: "Get an event by ID",
	Long:  `Retrieve an event by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ev, err := calendar.GetEvent(cmd.Context(), dbConn, eventID)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return fmt.Errorf("event not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}

		printEvent(ev)
		return nil
	},
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	Long:  `List every stored event ordered by date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		events, err := calendar.ListEvents(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		fmt.Println("Events:")
		printEventTable(events)
		return nil
	},
}

var updateEventCmd = &cobra.Command{
	Use:   "update [event-id]",
	Short: "Update an event",
	Long:  `Update an event's name, date, description, tag, or recurrence. Unspecified flags keep their current values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ev, err := calendar.GetEvent(cmd.Context(), dbConn, eventID)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return fmt.Errorf("event not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}

		if name, _ := cmd.Flags().GetString("name"); name != "" {
			ev.Name = name
		}
		if dateFlag != "" {
			date, err := parseDay(dateFlag)
			if err != nil {
				return err
			}
			ev.Date = date
		}
		if cmd.Flags().Changed("description") {
			ev.Description = descFlag
		}
		if tagFlag != "" {
			ev.Tag = calendar.Tag(tagFlag)
		}
		if recurrenceFlag != "" {
			ev.Recurrence = calendar.Recurrence(recurrenceFlag)
		}

		updated, err := calendar.UpdateEvent(cmd.Context(), dbConn, ev)
		if errors.Is(err, calendar.ErrTagConflict) {
			return fmt.Errorf("an event tagged '%s' already exists on %s", ev.Tag, ev.Date.Format(calendar.DateLayout))
		}
		if err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		fmt.Println("Event updated successfully!")
		printEvent(updated)
		return nil
	},
}

var deleteEventCmd = &cobra.Command{
	Use:   "delete [event-id]",
	Short: "Delete an event",
	Long:  `Delete a single event record. Other occurrences of a recurring series are untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = calendar.DeleteEvent(cmd.Context(), dbConn, eventID)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return fmt.Errorf("event not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}

		fmt.Printf("Event %s deleted.\n", args[0])
		return nil
	},
}

var eventsOnCmd = &cobra.Command{
	Use:   "on [date]",
	Short: "List events occurring on a day",
	Long:  `List the events occurring on the given day, including recurring matches.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		events, err := calendar.ListEvents(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		matches := calendar.EventsOn(day, events)
		if len(matches) == 0 {
			fmt.Printf("No events on %s.\n", args[0])
			return nil
		}

		fmt.Printf("Events on %s:\n", args[0])
		printEventTable(matches)
		return nil
	},
}

var upcomingEventsCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List upcoming events",
	Long:  `List the events whose next occurrence is strictly after the reference day (today unless --date is given).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := time.Now()
		if dateFlag != "" {
			day, err := parseDay(dateFlag)
			if err != nil {
				return err
			}
			ref = day
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		events, err := calendar.ListEvents(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		upcoming := calendar.Upcoming(ref, events)
		if len(upcoming) == 0 {
			fmt.Println("Nothing upcoming.")
			return nil
		}

		fmt.Println("Upcoming events:")
		fmt.Println("Next | ID | Name | Tag | Repeats")
		fmt.Println("------------------------------------------------------------")
		for _, ev := range upcoming {
			next, ok := calendar.NextOccurrence(ev, ref)
			if !ok {
				continue
			}
			fmt.Printf("%s | %s | %s | %s | %s\n",
				next.Format(calendar.DateLayout), ev.ID, ev.Name, ev.Tag, ev.Recurrence)
		}
		return nil
	},
}

func initEventsCmd() {
	createEventCmd.Flags().StringVar(&dateFlag, "date", "", "Date of the event in YYYY-MM-DD format (required)")
	createEventCmd.Flags().StringVar(&descFlag, "description", "", "Free-form description of the event")
	createEventCmd.Flags().StringVar(&tagFlag, "tag", "", "Tag: personal, birthday, work, reminder or fun (default: personal)")
	createEventCmd.Flags().StringVar(&recurrenceFlag, "recurrence", "", "Recurrence: none, daily, weekly, monthly or yearly (default: none)")
	createEventCmd.MarkFlagRequired("date")

	updateEventCmd.Flags().String("name", "", "New name for the event")
	updateEventCmd.Flags().StringVar(&dateFlag, "date", "", "New date in YYYY-MM-DD format")
	updateEventCmd.Flags().StringVar(&descFlag, "description", "", "New description")
	updateEventCmd.Flags().StringVar(&tagFlag, "tag", "", "New tag")
	updateEventCmd.Flags().StringVar(&recurrenceFlag, "recurrence", "", "New recurrence")

	upcomingEventsCmd.Flags().StringVar(&dateFlag, "date", "", "Reference day in YYYY-MM-DD format (default: today)")

	eventsCmd.AddCommand(
		createEventCmd,
		getEventCmd,
		listEventsCmd,
		updateEventCmd,
		deleteEventCmd,
		eventsOnCmd,
		upcomingEventsCmd,
	)
}
