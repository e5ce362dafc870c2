// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/silviochristian/novacal/pkg/gcal"
	"github.com/silviochristian/novacal/pkg/logger"
)

const (
	keywordResultCap = 10
	rangeResultCap   = 50
)

// FindByKeywordTool searches the primary calendar by free-text keyword and
// returns matching events with their EVENT_IDs, so the model can chain into
// update_event or delete_event.
type FindByKeywordTool struct {
	backend Backend
}

func NewFindByKeywordTool(backend Backend) *FindByKeywordTool {
	return &FindByKeywordTool{backend: backend}
}

func (t *FindByKeywordTool) Name() string { return "find_by_keyword" }

func (t *FindByKeywordTool) Description() string {
	return "Find events on the primary calendar matching a keyword. Returns each match with its " +
		"EVENT_ID, which is required for updating or deleting an event."
}

func (t *FindByKeywordTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"keyword"}, map[string]interface{}{
		"keyword": stringParam("Free-text keyword to match against event titles and descriptions."),
	})
}

func (t *FindByKeywordTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	keyword := argString(args, "keyword")
	if keyword == "" {
		return ErrorResult("Error finding events: keyword is required")
	}

	events, err := t.backend.ListEvents(ctx, "primary", gcal.ListParams{
		Query:      keyword,
		MaxResults: keywordResultCap,
	})
	if err != nil {
		return ErrorResult(fmt.Sprintf("Error finding events: %v", err)).WithError(err)
	}
	if len(events) == 0 {
		return TextResult(fmt.Sprintf("No events found matching the keyword: '%s'.", keyword))
	}
	if len(events) > keywordResultCap {
		events = events[:keywordResultCap]
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEventLine(e, true))
	}
	return TextResult(strings.Join(lines, "\n"))
}

// FindByRangeTool lists all events between two dates, aggregated across the
// primary calendar and the configured holiday calendar. A calendar that fails
// to load is skipped so the other one still answers.
type FindByRangeTool struct {
	backend           Backend
	holidayCalendarID string
	utcOffset         string
}

func NewFindByRangeTool(backend Backend, holidayCalendarID, utcOffset string) *FindByRangeTool {
	return &FindByRangeTool{
		backend:           backend,
		holidayCalendarID: holidayCalendarID,
		utcOffset:         utcOffset,
	}
}

func (t *FindByRangeTool) Name() string { return "find_by_range" }

func (t *FindByRangeTool) Description() string {
	return "List all events between two dates, including holidays and all-day events. Both " +
		"start_date and end_date are required, formatted YYYY-MM-DD."
}

func (t *FindByRangeTool) Parameters() map[string]interface{} {
	return objectSchema([]string{"start_date", "end_date"}, map[string]interface{}{
		"start_date": stringParam("Inclusive range start, YYYY-MM-DD."),
		"end_date":   stringParam("Inclusive range end, YYYY-MM-DD."),
	})
}

func (t *FindByRangeTool) calendars() []string {
	ids := []string{"primary"}
	if t.holidayCalendarID != "" {
		ids = append(ids, t.holidayCalendarID)
	}
	return ids
}

func (t *FindByRangeTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	startDate := argString(args, "start_date")
	endDate := argString(args, "end_date")
	if startDate == "" || endDate == "" {
		return ErrorResult("Error listing events: both start_date and end_date are required")
	}

	params := gcal.ListParams{
		TimeMin:    fmt.Sprintf("%sT00:00:00%s", startDate, t.utcOffset),
		TimeMax:    fmt.Sprintf("%sT23:59:59%s", endDate, t.utcOffset),
		MaxResults: rangeResultCap,
	}

	var events []gcal.Event
	for _, calendarID := range t.calendars() {
		batch, err := t.backend.ListEvents(ctx, calendarID, params)
		if err != nil {
			logger.WarnCF("tools", "calendar skipped in range listing", map[string]any{
				"calendar_id": calendarID,
				"error":       err.Error(),
			})
			continue
		}
		events = append(events, batch...)
	}

	if len(events) == 0 {
		return TextResult(fmt.Sprintf("No events scheduled from %s to %s.", startDate, endDate))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Value() < events[j].Start.Value()
	})
	if len(events) > rangeResultCap {
		events = events[:rangeResultCap]
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, formatEventLine(e, false))
	}
	return TextResult(strings.Join(lines, "\n"))
}
