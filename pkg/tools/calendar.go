// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/silviochristian/novacal/pkg/gcal"
)

// Native backend operations. The catalog gate removes the ones named with
// banned keywords before the model ever sees them; they are still implemented
// because the gate operates on the backend's full operation set.

func stringParam(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// formatEventLine renders one event for model consumption. All-day entries
// (date-only) render as "All-day"; timed entries as "HH:MM - HH:MM".
func formatEventLine(e gcal.Event, withID bool) string {
	title := e.Summary
	if title == "" {
		title = "Untitled Event"
	}

	startRaw := e.Start.Value()
	endRaw := e.End.Value()

	date := startRaw
	if len(date) > 10 {
		date = date[:10]
	}

	timeStr := "All-day"
	if strings.Contains(startRaw, "T") && len(startRaw) >= 16 && len(endRaw) >= 16 {
		timeStr = fmt.Sprintf("%s - %s", startRaw[11:16], endRaw[11:16])
	}

	if withID {
		id := e.ID
		if id == "" {
			id = "NO_ID_FOUND"
		}
		return fmt.Sprintf("- [%s] '%s' (%s) | EVENT_ID: %s", date, title, timeStr, id)
	}
	return fmt.Sprintf("- [%s] %s (%s)", date, title, timeStr)
}

func eventTimesFromArgs(args map[string]interface{}) (*gcal.EventTime, *gcal.EventTime) {
	start := argString(args, "start")
	end := argString(args, "end")
	if argBool(args, "all_day") {
		return &gcal.EventTime{Date: start}, &gcal.EventTime{Date: end}
	}
	var st, en *gcal.EventTime
	if start != "" {
		st = &gcal.EventTime{DateTime: start}
	}
	if end != "" {
		en = &gcal.EventTime{DateTime: end}
	}
	return st, en
}

type CreateEventTool struct {
	backend Backend
}

func NewCreateEventTool(backend Backend) *CreateEventTool {
	return &CreateEventTool{backend: backend}
}

func (t *CreateEventTool) Name() string { return "create_event" }

func (t *CreateEventTool) Description() string {
	return "Create a new calendar event. Provide the title, start and end as RFC 3339 timestamps " +
		"(or YYYY-MM-DD dates with all_day=true). calendar_id must be 'primary'."
}

func (t *CreateEventTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"calendar_id", "summary", "start", "end"}, map[string]interface{}{
		"calendar_id": stringParam("Target calendar id. Always 'primary'."),
		"summary":     stringParam("Event title."),
		"start":       stringParam("Start, RFC 3339 timestamp, or YYYY-MM-DD when all_day."),
		"end":         stringParam("End, RFC 3339 timestamp, or YYYY-MM-DD when all_day."),
		"all_day":     map[string]interface{}{"type": "boolean", "description": "True for a date-only event."},
		"description": stringParam("Optional event description."),
		"location":    stringParam("Optional event location."),
	})
}

func (t *CreateEventTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	start, end := eventTimesFromArgs(args)
	created, err := t.backend.InsertEvent(ctx, argString(args, "calendar_id"), gcal.Event{
		Summary:     argString(args, "summary"),
		Description: argString(args, "description"),
		Location:    argString(args, "location"),
		Start:       start,
		End:         end,
	})
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error creating event: %v", err)).WithError(err)
	}
	return TextResult(fmt.Sprintf("Event created:\n%s", formatEventLine(*created, true)))
}

type UpdateEventTool struct {
	backend Backend
}

func NewUpdateEventTool(backend Backend) *UpdateEventTool {
	return &UpdateEventTool{backend: backend}
}

func (t *UpdateEventTool) Name() string { return "update_event" }

func (t *UpdateEventTool) Description() string {
	return "Update an existing event by event_id. Pass the changed fields together with the " +
		"unchanged original fields. Resolve event_id with find_by_keyword or find_by_range first."
}

func (t *UpdateEventTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"calendar_id", "event_id"}, map[string]interface{}{
		"calendar_id": stringParam("Target calendar id. Always 'primary'."),
		"event_id":    stringParam("Opaque identifier of the event to update."),
		"summary":     stringParam("New or unchanged event title."),
		"start":       stringParam("Start, RFC 3339 timestamp, or YYYY-MM-DD when all_day."),
		"end":         stringParam("End, RFC 3339 timestamp, or YYYY-MM-DD when all_day."),
		"all_day":     map[string]interface{}{"type": "boolean", "description": "True for a date-only event."},
		"description": stringParam("Optional event description."),
		"location":    stringParam("Optional event location."),
	})
}

func (t *UpdateEventTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	eventID := argString(args, "event_id")
	if eventID == "" {
		return ErrorResult("Error updating event: event_id is required")
	}

	start, end := eventTimesFromArgs(args)
	updated, err := t.backend.PatchEvent(ctx, argString(args, "calendar_id"), eventID, gcal.Event{
		Summary:     argString(args, "summary"),
		Description: argString(args, "description"),
		Location:    argString(args, "location"),
		Start:       start,
		End:         end,
	})
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error updating event: %v", err)).WithError(err)
	}
	return TextResult(fmt.Sprintf("Event updated:\n%s", formatEventLine(*updated, true)))
}

type DeleteEventTool struct {
	backend Backend
}

func NewDeleteEventTool(backend Backend) *DeleteEventTool {
	return &DeleteEventTool{backend: backend}
}

func (t *DeleteEventTool) Name() string { return "delete_event" }

func (t *DeleteEventTool) Description() string {
	return "Delete an event by event_id. Resolve event_id with find_by_keyword or find_by_range first."
}

func (t *DeleteEventTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"calendar_id", "event_id"}, map[string]interface{}{
		"calendar_id": stringParam("Target calendar id. Always 'primary'."),
		"event_id":    stringParam("Opaque identifier of the event to delete."),
	})
}

func (t *DeleteEventTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	eventID := argString(args, "event_id")
	if eventID == "" {
		return ErrorResult("Error deleting event: event_id is required")
	}
	if err := t.backend.DeleteEvent(ctx, argString(args, "calendar_id"), eventID); err != nil {
		return ErrorResult(fmt.Sprintf("Error deleting event: %v", err)).WithError(err)
	}
	return TextResult(fmt.Sprintf("Event %s deleted.", eventID))
}

// SearchEventsTool is the backend's native free-text search. It is excluded
// from the catalog by the banned-keyword gate; find_by_keyword replaces it.
type SearchEventsTool struct {
	backend Backend
}

func NewSearchEventsTool(backend Backend) *SearchEventsTool {
	return &SearchEventsTool{backend: backend}
}

func (t *SearchEventsTool) Name() string { return "search_events" }

func (t *SearchEventsTool) Description() string {
	return "Free-text search for events on a calendar."
}

func (t *SearchEventsTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"calendar_id", "query"}, map[string]interface{}{
		"calendar_id": stringParam("Target calendar id."),
		"query":       stringParam("Free-text search query."),
	})
}

func (t *SearchEventsTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	events, err := t.backend.ListEvents(ctx, argString(args, "calendar_id"), gcal.ListParams{
		Query:      argString(args, "query"),
		MaxResults: 25,
	})
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error searching events: %v", err)).WithError(err)
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEventLine(e, true))
	}
	return TextResult(strings.Join(lines, "\n"))
}

// GetEventsTool is the backend's native by-id fetch, also excluded by the
// banned-keyword gate.
type GetEventsTool struct {
	backend Backend
}

func NewGetEventsTool(backend Backend) *GetEventsTool {
	return &GetEventsTool{backend: backend}
}

func (t *GetEventsTool) Name() string { return "get_events" }

func (t *GetEventsTool) Description() string {
	return "Fetch a single event by its identifier."
}

func (t *GetEventsTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"calendar_id", "event_id"}, map[string]interface{}{
		"calendar_id": stringParam("Target calendar id."),
		"event_id":    stringParam("Opaque identifier of the event."),
	})
}

func (t *GetEventsTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	event, err := t.backend.GetEvent(ctx, argString(args, "calendar_id"), argString(args, "event_id"))
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error fetching event: %v", err)).WithError(err)
	}
	return TextResult(formatEventLine(*event, true))
}
