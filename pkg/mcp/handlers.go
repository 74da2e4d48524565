package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Almanac MCP server is alive."),
		// No arguments needed for ping
	)
	s.AddTool(pingTool, pingHandler)
}

// pingHandler is the simple handler for the ping tool.
func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_almanac"), nil // Differentiate from a generic pong
}

// parseDateArg reads an optional YYYY-MM-DD argument, falling back to the
// current day when absent.
func parseDateArg(request mcp.CallToolRequest, key string, fallbackToNow bool) (time.Time, error) {
	raw, ok := request.Params.Arguments[key].(string)
	if !ok || raw == "" {
		if fallbackToNow {
			return time.Now(), nil
		}
		return time.Time{}, fmt.Errorf("'%s' parameter is required (format %s)", key, calendar.DateLayout)
	}
	date, err := time.Parse(calendar.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' must be a %s date: %v", key, calendar.DateLayout, err)
	}
	return date, nil
}

// parseIDArg reads a required event id argument.
func parseIDArg(request mcp.CallToolRequest) (uuid.UUID, error) {
	raw, ok := request.Params.Arguments["id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("'id' parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("'id' is not a valid UUID: %v", err)
	}
	return id, nil
}

func eventsResult(events []calendar.Event) (*mcp.CallToolResult, error) {
	if len(events) == 0 {
		return mcp.NewToolResultText("[]"), nil
	}
	jsonResult, err := json.Marshal(events)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize events to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

// RegisterCreateEventTool registers the create_event tool.
func RegisterCreateEventTool(s *server.MCPServer, db *sql.DB) {
	createEvent := mcp.NewTool("create_event",
		mcp.WithDescription("Creates a calendar event. Recurring events are materialized up to one year out (daily events cap at 14 occurrences)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the event.")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Event date in YYYY-MM-DD format.")),
		mcp.WithString("description", mcp.Description("Optional free-form description.")),
		mcp.WithString("tag", mcp.DefaultString(string(calendar.TagPersonal)), mcp.Description("Optional tag: personal, birthday, work, reminder or fun.")),
		mcp.WithString("recurrence", mcp.DefaultString(string(calendar.RecurNone)), mcp.Description("Optional recurrence: none, daily, weekly, monthly or yearly.")),
	)
	s.AddTool(createEvent, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, nameOk := request.Params.Arguments["name"].(string)
		if !nameOk || name == "" {
			return mcp.NewToolResultError("'name' parameter is required and must be a non-empty string."), nil
		}

		date, err := parseDateArg(request, "date", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		description, _ := request.Params.Arguments["description"].(string)
		tag, _ := request.Params.Arguments["tag"].(string)
		recurrence, _ := request.Params.Arguments["recurrence"].(string)

		ev := calendar.Event{
			Name:        name,
			Date:        date,
			Description: description,
			Tag:         calendar.Tag(tag),
			Recurrence:  calendar.Recurrence(recurrence),
		}

		stored, err := calendar.CreateEvent(ctx, db, ev, calendar.DefaultHorizon(date))
		if err != nil {
			if errors.Is(err, calendar.ErrTagConflict) {
				return mcp.NewToolResultError(fmt.Sprintf("Event '%s' conflicts with an existing %s event on %s.", name, tag, date.Format(calendar.DateLayout))), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
		}

		return eventsResult(stored)
	})
}

// RegisterGetEventTool registers the get_event tool.
func RegisterGetEventTool(s *server.MCPServer, db *sql.DB) {
	getEventTool := mcp.NewTool("get_event",
		mcp.WithDescription("Retrieves a single event by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("UUID of the event to retrieve.")),
	)
	s.AddTool(getEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := parseIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		ev, err := calendar.GetEvent(ctx, db, id)
		if err != nil {
			if errors.Is(err, calendar.ErrEventNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Event with id '%s' not found.", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving event '%s': %v", id, err)), nil
		}

		jsonResult, err := json.Marshal(ev)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize event to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterListEventsTool registers the list_events tool.
func RegisterListEventsTool(s *server.MCPServer, db *sql.DB) {
	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("Lists every stored event ordered by date."),
		// No parameters for now
	)
	s.AddTool(listEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events, err := calendar.ListEvents(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
		}
		return eventsResult(events)
	})
}

// RegisterUpdateEventTool registers the update_event tool.
func RegisterUpdateEventTool(s *server.MCPServer, db *sql.DB) {
	updateEventTool := mcp.NewTool("update_event",
		mcp.WithDescription("Updates an existing event. Unspecified fields keep their current values."),
		mcp.WithString("id", mcp.Required(), mcp.Description("UUID of the event to update.")),
		mcp.WithString("name", mcp.Description("Optional new name.")),
		mcp.WithString("date", mcp.Description("Optional new date in YYYY-MM-DD format.")),
		mcp.WithString("description", mcp.Description("Optional new description.")),
		mcp.WithString("tag", mcp.Description("Optional new tag.")),
		mcp.WithString("recurrence", mcp.Description("Optional new recurrence.")),
	)
	s.AddTool(updateEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := parseIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		current, err := calendar.GetEvent(ctx, db, id)
		if err != nil {
			if errors.Is(err, calendar.ErrEventNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Event with id '%s' not found.", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Error finding event '%s' to update: %v", id, err)), nil
		}

		if name, ok := request.Params.Arguments["name"].(string); ok && name != "" {
			current.Name = name
		}
		if rawDate, ok := request.Params.Arguments["date"].(string); ok && rawDate != "" {
			date, err := time.Parse(calendar.DateLayout, rawDate)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("'date' must be a %s date: %v", calendar.DateLayout, err)), nil
			}
			current.Date = date
		}
		if description, ok := request.Params.Arguments["description"].(string); ok {
			current.Description = description
		}
		if tag, ok := request.Params.Arguments["tag"].(string); ok && tag != "" {
			current.Tag = calendar.Tag(tag)
		}
		if recurrence, ok := request.Params.Arguments["recurrence"].(string); ok && recurrence != "" {
			current.Recurrence = calendar.Recurrence(recurrence)
		}

		updated, err := calendar.UpdateEvent(ctx, db, current)
		if err != nil {
			if errors.Is(err, calendar.ErrTagConflict) {
				return mcp.NewToolResultError(fmt.Sprintf("Update would conflict with an existing %s event on %s.", current.Tag, current.Date.Format(calendar.DateLayout))), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update event '%s': %v", id, err)), nil
		}

		jsonResult, err := json.Marshal(updated)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize updated event to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterDeleteEventTool registers the delete_event tool.
func RegisterDeleteEventTool(s *server.MCPServer, db *sql.DB) {
	deleteEventTool := mcp.NewTool("delete_event",
		mcp.WithDescription("Deletes a single event by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("UUID of the event to delete.")),
	)
	s.AddTool(deleteEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := parseIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := calendar.DeleteEvent(ctx, db, id); err != nil {
			if errors.Is(err, calendar.ErrEventNotFound) {
				// Deletion of a missing event is effectively idempotent.
				return mcp.NewToolResultText(fmt.Sprintf("Event '%s' not found, nothing to delete.", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event '%s': %v", id, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Event '%s' deleted successfully.", id)), nil
	})
}

// RegisterEventsOnDayTool registers the events_on_day tool.
func RegisterEventsOnDayTool(s *server.MCPServer, db *sql.DB) {
	eventsOnDayTool := mcp.NewTool("events_on_day",
		mcp.WithDescription("Lists the events occurring on a given day, including recurring matches."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day to query in YYYY-MM-DD format.")),
	)
	s.AddTool(eventsOnDayTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(request, "date", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		events, err := calendar.ListEvents(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
		}
		return eventsResult(calendar.EventsOn(date, events))
	})
}

// RegisterUpcomingEventsTool registers the upcoming_events tool.
func RegisterUpcomingEventsTool(s *server.MCPServer, db *sql.DB) {
	upcomingTool := mcp.NewTool("upcoming_events",
		mcp.WithDescription("Lists the events whose next occurrence is strictly after the reference day."),
		mcp.WithString("date", mcp.Description("Optional reference day in YYYY-MM-DD format. Defaults to today.")),
	)
	s.AddTool(upcomingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := parseDateArg(request, "date", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		events, err := calendar.ListEvents(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
		}
		return eventsResult(calendar.Upcoming(ref, events))
	})
}

// RegisterCheckConflictTool registers the check_conflict tool.
func RegisterCheckConflictTool(s *server.MCPServer, db *sql.DB) {
	checkConflictTool := mcp.NewTool("check_conflict",
		mcp.WithDescription("Checks whether an event with the given day and tag would be rejected by the conflict rule."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Candidate day in YYYY-MM-DD format.")),
		mcp.WithString("tag", mcp.DefaultString(string(calendar.TagPersonal)), mcp.Description("Candidate tag. Defaults to personal.")),
	)
	s.AddTool(checkConflictTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(request, "date", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rawTag, _ := request.Params.Arguments["tag"].(string)
		tag, ok := calendar.ParseTag(rawTag)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("'%s' is not a known tag.", rawTag)), nil
		}

		events, err := calendar.ListEvents(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
		}

		candidate := calendar.Event{ID: uuid.New(), Date: date, Tag: tag}
		response := struct {
			Conflict bool   `json:"conflict"`
			Date     string `json:"date"`
			Tag      string `json:"tag"`
		}{
			Conflict: calendar.HasConflict(candidate, events),
			Date:     date.Format(calendar.DateLayout),
			Tag:      string(tag),
		}

		jsonResult, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize conflict result to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
