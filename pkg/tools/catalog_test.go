// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silviochristian/novacal/pkg/gcal"
)

type fakeBackend struct {
	eventsByCalendar map[string][]gcal.Event
	failCalendars    map[string]bool
	listCalls        []string
	lastParams       gcal.ListParams
	deleted          []string
	inserted         []gcal.Event
	patched          map[string]gcal.Event
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		eventsByCalendar: map[string][]gcal.Event{},
		failCalendars:    map[string]bool{},
		patched:          map[string]gcal.Event{},
	}
}

func (f *fakeBackend) ListEvents(_ context.Context, calendarID string, params gcal.ListParams) ([]gcal.Event, error) {
	f.listCalls = append(f.listCalls, calendarID)
	f.lastParams = params
	if f.failCalendars[calendarID] {
		return nil, errors.New("calendar unavailable")
	}
	return f.eventsByCalendar[calendarID], nil
}

func (f *fakeBackend) GetEvent(_ context.Context, calendarID, eventID string) (*gcal.Event, error) {
	for _, e := range f.eventsByCalendar[calendarID] {
		if e.ID == eventID {
			return &e, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) InsertEvent(_ context.Context, _ string, event gcal.Event) (*gcal.Event, error) {
	event.ID = fmt.Sprintf("evt_%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, event)
	return &event, nil
}

func (f *fakeBackend) PatchEvent(_ context.Context, _ string, eventID string, event gcal.Event) (*gcal.Event, error) {
	event.ID = eventID
	f.patched[eventID] = event
	return &event, nil
}

func (f *fakeBackend) DeleteEvent(_ context.Context, _ string, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func timedEvent(id, title, date, startHM, endHM string) gcal.Event {
	return gcal.Event{
		ID:      id,
		Summary: title,
		Start:   &gcal.EventTime{DateTime: fmt.Sprintf("%sT%s:00+07:00", date, startHM)},
		End:     &gcal.EventTime{DateTime: fmt.Sprintf("%sT%s:00+07:00", date, endHM)},
	}
}

func allDayEvent(id, title, date string) gcal.Event {
	return gcal.Event{
		ID:      id,
		Summary: title,
		Start:   &gcal.EventTime{Date: date},
		End:     &gcal.EventTime{Date: date},
	}
}

func TestCatalogExcludesBannedNatives(t *testing.T) {
	registry := BuildCatalog(newFakeBackend(), "holidays@example.com", "+07:00")

	names := registry.List()
	assert.NotContains(t, names, "search_events")
	assert.NotContains(t, names, "get_events")
	assert.Contains(t, names, "create_event")
	assert.Contains(t, names, "update_event")
	assert.Contains(t, names, "delete_event")
	assert.Contains(t, names, "find_by_keyword")
	assert.Contains(t, names, "find_by_range")
	assert.Equal(t, 5, registry.Count())
}

func TestCatalogOrderIsStable(t *testing.T) {
	registry := BuildCatalog(newFakeBackend(), "", "+07:00")

	defs := registry.ToProviderDefs()
	require.Len(t, defs, 5)
	assert.Equal(t, "create_event", defs[0].Function.Name)
	assert.Equal(t, "find_by_range", defs[4].Function.Name)
}

func TestFindByKeywordReturnsEventIDs(t *testing.T) {
	backend := newFakeBackend()
	backend.eventsByCalendar["primary"] = []gcal.Event{
		timedEvent("abc123", "Dentist", "2026-09-02", "09:00", "10:00"),
	}

	tool := NewFindByKeywordTool(backend)
	result := tool.Execute(context.Background(), map[string]interface{}{"keyword": "dentist"})

	require.False(t, result.IsError)
	assert.Equal(t, "- [2026-09-02] 'Dentist' (09:00 - 10:00) | EVENT_ID: abc123", result.ForLLM)
}

func TestFindByKeywordNoMatches(t *testing.T) {
	tool := NewFindByKeywordTool(newFakeBackend())
	result := tool.Execute(context.Background(), map[string]interface{}{"keyword": "yoga"})

	require.False(t, result.IsError)
	assert.Equal(t, "No events found matching the keyword: 'yoga'.", result.ForLLM)
}

func TestFindByKeywordRequiresKeyword(t *testing.T) {
	tool := NewFindByKeywordTool(newFakeBackend())
	result := tool.Execute(context.Background(), map[string]interface{}{})

	assert.True(t, result.IsError)
}

func TestFindByRangeAggregatesCalendars(t *testing.T) {
	backend := newFakeBackend()
	backend.eventsByCalendar["primary"] = []gcal.Event{
		timedEvent("e1", "Standup", "2026-09-02", "09:00", "09:15"),
	}
	backend.eventsByCalendar["holidays@example.com"] = []gcal.Event{
		allDayEvent("h1", "Independence Day", "2026-09-01"),
	}

	tool := NewFindByRangeTool(backend, "holidays@example.com", "+07:00")
	result := tool.Execute(context.Background(), map[string]interface{}{
		"start_date": "2026-09-01",
		"end_date":   "2026-09-07",
	})

	require.False(t, result.IsError)
	assert.Equal(t,
		"- [2026-09-01] Independence Day (All-day)\n- [2026-09-02] Standup (09:00 - 09:15)",
		result.ForLLM)
	assert.NotContains(t, result.ForLLM, "EVENT_ID")
}

func TestFindByRangeSkipsFailingCalendar(t *testing.T) {
	backend := newFakeBackend()
	backend.eventsByCalendar["primary"] = []gcal.Event{
		timedEvent("e1", "Standup", "2026-09-02", "09:00", "09:15"),
	}
	backend.failCalendars["holidays@example.com"] = true

	tool := NewFindByRangeTool(backend, "holidays@example.com", "+07:00")
	result := tool.Execute(context.Background(), map[string]interface{}{
		"start_date": "2026-09-01",
		"end_date":   "2026-09-07",
	})

	require.False(t, result.IsError)
	assert.Contains(t, result.ForLLM, "Standup")
	assert.Equal(t, []string{"primary", "holidays@example.com"}, backend.listCalls)
}

func TestFindByRangeNoEvents(t *testing.T) {
	tool := NewFindByRangeTool(newFakeBackend(), "", "+07:00")
	result := tool.Execute(context.Background(), map[string]interface{}{
		"start_date": "2026-09-01",
		"end_date":   "2026-09-07",
	})

	require.False(t, result.IsError)
	assert.Equal(t, "No events scheduled from 2026-09-01 to 2026-09-07.", result.ForLLM)
}

func TestFindByRangeRequiresBothDates(t *testing.T) {
	tool := NewFindByRangeTool(newFakeBackend(), "", "+07:00")
	result := tool.Execute(context.Background(), map[string]interface{}{
		"start_date": "2026-09-01",
	})

	assert.True(t, result.IsError)
}

func TestFindByRangeDayBoundaries(t *testing.T) {
	backend := newFakeBackend()
	tool := NewFindByRangeTool(backend, "", "+07:00")
	tool.Execute(context.Background(), map[string]interface{}{
		"start_date": "2026-09-01",
		"end_date":   "2026-09-07",
	})

	assert.Equal(t, "2026-09-01T00:00:00+07:00", backend.lastParams.TimeMin)
	assert.Equal(t, "2026-09-07T23:59:59+07:00", backend.lastParams.TimeMax)
}

func TestDeleteEventRequiresID(t *testing.T) {
	tool := NewDeleteEventTool(newFakeBackend())
	result := tool.Execute(context.Background(), map[string]interface{}{"calendar_id": "primary"})

	assert.True(t, result.IsError)
}

func TestDeleteEvent(t *testing.T) {
	backend := newFakeBackend()
	tool := NewDeleteEventTool(backend)
	result := tool.Execute(context.Background(), map[string]interface{}{
		"calendar_id": "primary",
		"event_id":    "abc123",
	})

	require.False(t, result.IsError)
	assert.Equal(t, []string{"abc123"}, backend.deleted)
}

func TestCreateEventAllDay(t *testing.T) {
	backend := newFakeBackend()
	tool := NewCreateEventTool(backend)
	result := tool.Execute(context.Background(), map[string]interface{}{
		"calendar_id": "primary",
		"summary":     "Conference",
		"start":       "2026-09-10",
		"end":         "2026-09-11",
		"all_day":     true,
	})

	require.False(t, result.IsError)
	require.Len(t, backend.inserted, 1)
	assert.Equal(t, "2026-09-10", backend.inserted[0].Start.Date)
	assert.Empty(t, backend.inserted[0].Start.DateTime)
	assert.Contains(t, result.ForLLM, "All-day")
}

func TestRegistryRejectsUnknownTool(t *testing.T) {
	registry := BuildCatalog(newFakeBackend(), "", "+07:00")
	result := registry.Execute(context.Background(), "search_events", map[string]interface{}{})

	assert.True(t, result.IsError)
}
